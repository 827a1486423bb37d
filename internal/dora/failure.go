/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package dora

// criticalPriorities marks the priorities counted as critical failures.
var criticalPriorities = map[string]struct{}{"Highest": {}, "High": {}}

// FailureRateStats is the share of bug-typed issues in the whole population.
type FailureRateStats struct {
    TotalIssues     int     `json:"total_issues"`
    BugIssues       int     `json:"bug_issues"`
    CriticalBugs    int     `json:"critical_bugs"`
    Percent         float64 `json:"failure_rate_percent"`
    CriticalPercent float64 `json:"critical_failure_rate_percent"`
    Level           Tier    `json:"performance_level,omitempty"`
}

// CalculateFailureRate counts bugs and Highest/High-priority bugs against the
// full record count. Both percentages stay 0 on an empty input.
func CalculateFailureRate(records []Record) FailureRateStats {
    total := len(records)
    bugs, critical := 0, 0
    for _, r := range records {
        if r.IssueType() != issueTypeBug { continue }
        bugs++
        if _, ok := criticalPriorities[r.Priority()]; ok { critical++ }
    }
    out := FailureRateStats{TotalIssues: total, BugIssues: bugs, CriticalBugs: critical}
    if total > 0 {
        out.Percent = round1(float64(bugs) / float64(total) * 100)
        out.CriticalPercent = round1(float64(critical) / float64(total) * 100)
    }
    return out
}
