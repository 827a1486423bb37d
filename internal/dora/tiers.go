/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package dora

// Tier is one of the four benchmark performance bands.
type Tier string

const (
    TierElite   Tier = "Elite"
    TierHigh    Tier = "High"
    TierMedium  Tier = "Medium"
    TierLow     Tier = "Low"
    TierUnknown Tier = "Unknown"
)

// Metric names accepted by Classify.
type Metric string

const (
    MetricLeadTimeDays   Metric = "lead_time_days"
    MetricDeploysPerWeek Metric = "deployments_per_week"
    MetricMTTRHours      Metric = "mttr_hours"
    MetricFailureRate    Metric = "failure_rate"
)

type benchmark struct {
    elite, high, medium float64
    higherIsBetter      bool
}

// Industry benchmark thresholds per metric.
var benchmarks = map[Metric]benchmark{
    MetricLeadTimeDays:   {elite: 1, high: 7, medium: 30},
    MetricDeploysPerWeek: {elite: 7, high: 1, medium: 0.2, higherIsBetter: true},
    MetricMTTRHours:      {elite: 1, high: 24, medium: 168},
    MetricFailureRate:    {elite: 5, high: 15, medium: 30},
}

// Classify maps a headline statistic to its benchmark tier. Deployment
// frequency ranks in the opposite direction of the other three metrics: more
// per week is better, so it compares with >= against the same table.
func Classify(metric Metric, value float64) Tier {
    b, ok := benchmarks[metric]
    if !ok { return TierUnknown }
    meets := func(threshold float64) bool {
        if b.higherIsBetter { return value >= threshold }
        return value <= threshold
    }
    switch {
    case meets(b.elite):
        return TierElite
    case meets(b.high):
        return TierHigh
    case meets(b.medium):
        return TierMedium
    default:
        return TierLow
    }
}
