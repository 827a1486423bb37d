/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package dora

import "fmt"

// deployWindowDays is the fixed window the weekly cadence is estimated
// against, regardless of the actual span of the input. Inherited from the
// benchmark methodology; an input spanning less than 90 days undercounts.
const deployWindowDays = 90

// DeployFrequencyStats estimates weekly release cadence from distinct
// resolution days.
type DeployFrequencyStats struct {
    Frequency        string  `json:"frequency"`
    PerWeek          float64 `json:"deployments_per_week"`
    TotalDeployments int     `json:"total_deployments"`
    Level            Tier    `json:"performance_level,omitempty"`
}

// CalculateDeployFrequency treats each distinct calendar date (UTC) carrying
// at least one resolution as one deployment day. Multiple resolutions on the
// same day collapse to one.
func CalculateDeployFrequency(records []Record) DeployFrequencyStats {
    days := map[string]struct{}{}
    for _, r := range records {
        if resolved, ok := r.ResolvedAt(); ok {
            days[resolved.Format("2006-01-02")] = struct{}{}
        }
    }
    if len(days) == 0 { return DeployFrequencyStats{Frequency: "No data"} }

    unique := len(days)
    return DeployFrequencyStats{
        Frequency:        fmt.Sprintf("%d deployment days in %d days", unique, deployWindowDays),
        PerWeek:          round1(float64(unique) / deployWindowDays * 7),
        TotalDeployments: unique,
    }
}
