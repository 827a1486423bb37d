package dora

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func resolvedIssue(typ, created, resolved string) Record {
    r := Record{"created": created}
    if resolved != "" { r["resolutiondate"] = resolved }
    if typ != "" { r["issuetype"] = map[string]any{"name": typ} }
    return r
}

func TestCalculateLeadTime(t *testing.T) {
    records := []Record{
        resolvedIssue("Story", "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z"), // 1d
        resolvedIssue("Task", "2024-01-01T00:00:00Z", "2024-01-05T00:00:00Z"),  // 4d
        resolvedIssue("Bug", "2024-01-01T00:00:00Z", "2024-01-11T00:00:00Z"),   // 10d
    }
    lt := CalculateLeadTime(records)
    assert.Equal(t, 3, lt.Count)
    assert.Equal(t, 5.0, lt.Average)
    assert.Equal(t, 4.0, lt.Median)
    assert.Equal(t, 1.0, lt.Min)
    assert.Equal(t, 10.0, lt.Max)
    assert.GreaterOrEqual(t, lt.Average, lt.Min)
    assert.LessOrEqual(t, lt.Average, lt.Max)
}

func TestCalculateLeadTime_EvenCountMedian(t *testing.T) {
    records := []Record{
        resolvedIssue("", "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z"), // 1d
        resolvedIssue("", "2024-01-01T00:00:00Z", "2024-01-04T00:00:00Z"), // 3d
        resolvedIssue("", "2024-01-01T00:00:00Z", "2024-01-06T00:00:00Z"), // 5d
        resolvedIssue("", "2024-01-01T00:00:00Z", "2024-01-08T00:00:00Z"), // 7d
    }
    assert.Equal(t, 4.0, CalculateLeadTime(records).Median)
}

func TestCalculateLeadTime_FractionalDaysRounding(t *testing.T) {
    records := []Record{
        resolvedIssue("", "2024-01-01T00:00:00Z", "2024-01-02T12:00:00Z"), // 1.5d
    }
    lt := CalculateLeadTime(records)
    assert.Equal(t, 1.5, lt.Average)
    assert.Equal(t, 1.5, lt.Median)
}

func TestCalculateLeadTime_ExcludesUnresolvedAndUnparseable(t *testing.T) {
    records := []Record{
        resolvedIssue("", "2024-01-01T00:00:00Z", ""),                     // unresolved
        {"created": "garbage", "resolutiondate": "2024-01-02T00:00:00Z"},  // bad created
        resolvedIssue("", "2024-01-01T00:00:00Z", "2024-01-03T00:00:00Z"), // 2d
    }
    lt := CalculateLeadTime(records)
    assert.Equal(t, 1, lt.Count)
    assert.Equal(t, 2.0, lt.Average)
}

func TestCalculateLeadTime_Empty(t *testing.T) {
    assert.Equal(t, LeadTimeStats{}, CalculateLeadTime(nil))
    assert.Equal(t, LeadTimeStats{}, CalculateLeadTime([]Record{{"key": "X-1"}}))
}
