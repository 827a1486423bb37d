/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package dora

// issueTypeBug selects the recovery and failure-rate subpopulations. Exact
// match: "Bug Sub-task" is not a bug.
const issueTypeBug = "Bug"

// MTTRStats is mean time to recovery over resolved bugs.
type MTTRStats struct {
    AverageHours float64 `json:"average_hours"`
    AverageDays  float64 `json:"average_days"`
    Count        int     `json:"count"`
    Level        Tier    `json:"performance_level,omitempty"`
}

// CalculateMTTR averages creation-to-resolution hours over records typed
// exactly "Bug" with both timestamps parseable.
func CalculateMTTR(records []Record) MTTRStats {
    var hours []float64
    for _, r := range records {
        if r.IssueType() != issueTypeBug { continue }
        created, ok := r.CreatedAt()
        if !ok { continue }
        resolved, ok := r.ResolvedAt()
        if !ok { continue }
        hours = append(hours, resolved.Sub(created).Hours())
    }
    if len(hours) == 0 { return MTTRStats{} }

    sum := 0.0
    for _, h := range hours { sum += h }
    avg := sum / float64(len(hours))
    return MTTRStats{
        AverageHours: round1(avg),
        AverageDays:  round1(avg / 24),
        Count:        len(hours),
    }
}
