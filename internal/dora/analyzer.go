/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package dora

import (
    "math"
    "time"
)

// Result is the full DORA summary for one analysis run. Plain data, produced
// fresh per run and never mutated afterwards; safe for direct JSON encoding.
type Result struct {
    LeadTime            LeadTimeStats        `json:"lead_time"`
    DeploymentFrequency DeployFrequencyStats `json:"deployment_frequency"`
    MTTR                MTTRStats            `json:"mttr"`
    ChangeFailureRate   FailureRateStats     `json:"change_failure_rate"`
    TotalIssues         int                  `json:"total_issues_analyzed"`
    AnalyzedAt          time.Time            `json:"analysis_date"`
}

// Analyze runs the four calculators over the same record slice and classifies
// each headline statistic. It cannot fail: malformed records shrink the
// affected populations and an empty input yields the zero-valued summaries.
// The recorded timestamp is the only non-determinism.
func Analyze(records []Record) Result {
    return analyzeAt(records, time.Now().UTC())
}

func analyzeAt(records []Record, now time.Time) Result {
    res := Result{
        LeadTime:            CalculateLeadTime(records),
        DeploymentFrequency: CalculateDeployFrequency(records),
        MTTR:                CalculateMTTR(records),
        ChangeFailureRate:   CalculateFailureRate(records),
        TotalIssues:         len(records),
        AnalyzedAt:          now,
    }
    res.LeadTime.Level = Classify(MetricLeadTimeDays, res.LeadTime.Average)
    res.DeploymentFrequency.Level = Classify(MetricDeploysPerWeek, res.DeploymentFrequency.PerWeek)
    res.MTTR.Level = Classify(MetricMTTRHours, res.MTTR.AverageHours)
    res.ChangeFailureRate.Level = Classify(MetricFailureRate, res.ChangeFailureRate.Percent)
    return res
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
