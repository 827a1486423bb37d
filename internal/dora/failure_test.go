package dora

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func typedIssue(typ, priority string) Record {
    r := Record{"issuetype": map[string]any{"name": typ}}
    if priority != "" { r["priority"] = map[string]any{"name": priority} }
    return r
}

func TestCalculateFailureRate(t *testing.T) {
    records := []Record{
        typedIssue("Bug", "Highest"),
        typedIssue("Bug", "Medium"),
        typedIssue("Bug", "High"),
        typedIssue("Story", "High"), // critical priority but not a bug
        typedIssue("Task", ""),
        typedIssue("Story", ""),
        typedIssue("Story", ""),
        typedIssue("Task", ""),
        typedIssue("Story", ""),
        typedIssue("Task", ""),
    }
    fr := CalculateFailureRate(records)
    assert.Equal(t, 10, fr.TotalIssues)
    assert.Equal(t, 3, fr.BugIssues)
    assert.Equal(t, 2, fr.CriticalBugs)
    assert.Equal(t, 30.0, fr.Percent)
    assert.Equal(t, 20.0, fr.CriticalPercent)
}

func TestCalculateFailureRate_ZeroGuard(t *testing.T) {
    fr := CalculateFailureRate(nil)
    assert.Zero(t, fr.Percent)
    assert.Zero(t, fr.CriticalPercent)
    assert.Zero(t, fr.TotalIssues)
}

func TestCalculateFailureRate_CountsUnresolvedBugs(t *testing.T) {
    // Failure rate looks at type and priority only; resolution state is
    // irrelevant, unlike MTTR.
    records := []Record{
        {"issuetype": map[string]any{"name": "Bug"}},
        typedIssue("Story", ""),
    }
    fr := CalculateFailureRate(records)
    assert.Equal(t, 1, fr.BugIssues)
    assert.Equal(t, 50.0, fr.Percent)
}
