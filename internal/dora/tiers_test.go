package dora

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestClassify_LeadTimeBoundaries(t *testing.T) {
    assert.Equal(t, TierElite, Classify(MetricLeadTimeDays, 1))
    assert.Equal(t, TierHigh, Classify(MetricLeadTimeDays, 1.01))
    assert.Equal(t, TierHigh, Classify(MetricLeadTimeDays, 7))
    assert.Equal(t, TierMedium, Classify(MetricLeadTimeDays, 30))
    assert.Equal(t, TierLow, Classify(MetricLeadTimeDays, 999))
}

func TestClassify_DeployFrequencyHigherIsBetter(t *testing.T) {
    assert.Equal(t, TierElite, Classify(MetricDeploysPerWeek, 20))
    assert.Equal(t, TierElite, Classify(MetricDeploysPerWeek, 7))
    assert.Equal(t, TierHigh, Classify(MetricDeploysPerWeek, 2.5))
    assert.Equal(t, TierMedium, Classify(MetricDeploysPerWeek, 0.5))
    assert.Equal(t, TierLow, Classify(MetricDeploysPerWeek, 0.1))
    assert.Equal(t, TierLow, Classify(MetricDeploysPerWeek, 0))
}

func TestClassify_MTTRAndFailureRate(t *testing.T) {
    assert.Equal(t, TierElite, Classify(MetricMTTRHours, 0.5))
    assert.Equal(t, TierHigh, Classify(MetricMTTRHours, 24))
    assert.Equal(t, TierMedium, Classify(MetricMTTRHours, 168))
    assert.Equal(t, TierLow, Classify(MetricMTTRHours, 169))

    assert.Equal(t, TierElite, Classify(MetricFailureRate, 5))
    assert.Equal(t, TierHigh, Classify(MetricFailureRate, 12.5))
    assert.Equal(t, TierMedium, Classify(MetricFailureRate, 30))
    assert.Equal(t, TierLow, Classify(MetricFailureRate, 45))
}

func TestClassify_UnknownMetric(t *testing.T) {
    assert.Equal(t, TierUnknown, Classify("velocity", 3))
}
