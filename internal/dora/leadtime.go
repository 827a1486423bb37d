/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package dora

import "sort"

// LeadTimeStats summarizes creation-to-resolution spans in fractional days.
type LeadTimeStats struct {
    Average float64 `json:"average"`
    Median  float64 `json:"median"`
    Min     float64 `json:"min"`
    Max     float64 `json:"max"`
    Count   int     `json:"count"`
    Level   Tier    `json:"performance_level,omitempty"`
}

const secondsPerDay = 24 * 3600

// CalculateLeadTime measures elapsed days between creation and resolution for
// every record that carries both timestamps. Records missing either one drop
// out of the population; the zero struct comes back when nothing qualifies.
func CalculateLeadTime(records []Record) LeadTimeStats {
    var days []float64
    for _, r := range records {
        created, ok := r.CreatedAt()
        if !ok { continue }
        resolved, ok := r.ResolvedAt()
        if !ok { continue }
        days = append(days, resolved.Sub(created).Seconds()/secondsPerDay)
    }
    if len(days) == 0 { return LeadTimeStats{} }

    sort.Float64s(days)
    sum := 0.0
    for _, d := range days { sum += d }
    return LeadTimeStats{
        Average: round1(sum / float64(len(days))),
        Median:  round1(median(days)),
        Min:     round1(days[0]),
        Max:     round1(days[len(days)-1]),
        Count:   len(days),
    }
}

// median expects sorted input.
func median(sorted []float64) float64 {
    n := len(sorted)
    if n%2 == 1 { return sorted[n/2] }
    return (sorted[n/2-1] + sorted[n/2]) / 2
}
