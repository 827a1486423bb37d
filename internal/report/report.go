/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */

// Package report renders an analysis result as plain text suitable for both
// console output and chat delivery.
package report

import (
    "fmt"
    "strings"

    "github.com/HamedShams/dora-pulse/internal/dora"
)

func mark(t dora.Tier) string {
    switch t {
    case dora.TierElite:
        return "[Elite]"
    case dora.TierHigh:
        return "[High]"
    case dora.TierMedium:
        return "[Medium]"
    case dora.TierLow:
        return "[Low]"
    default:
        return "[?]"
    }
}

func needsWork(t dora.Tier) bool { return t == dora.TierMedium || t == dora.TierLow }

// Render formats the four metric summaries, a detailed breakdown, and a
// recommendation per underperforming metric.
func Render(project string, res dora.Result) string {
    var b strings.Builder
    title := "DORA metrics"
    if project != "" { title += " - " + project }
    fmt.Fprintf(&b, "%s\n", title)
    fmt.Fprintf(&b, "Analyzed %d issues at %s\n\n", res.TotalIssues, res.AnalyzedAt.Format("2006-01-02 15:04 MST"))

    lt := res.LeadTime
    df := res.DeploymentFrequency
    mttr := res.MTTR
    cfr := res.ChangeFailureRate

    fmt.Fprintf(&b, "%-22s %-28s %s\n", "Lead Time", fmt.Sprintf("%.1fd avg, %.1fd median", lt.Average, lt.Median), mark(lt.Level))
    fmt.Fprintf(&b, "%-22s %-28s %s\n", "Deployment Frequency", fmt.Sprintf("%.1f/week", df.PerWeek), mark(df.Level))
    fmt.Fprintf(&b, "%-22s %-28s %s\n", "MTTR", fmt.Sprintf("%.1fh (%.1fd)", mttr.AverageHours, mttr.AverageDays), mark(mttr.Level))
    fmt.Fprintf(&b, "%-22s %-28s %s\n", "Change Failure Rate", fmt.Sprintf("%.1f%%", cfr.Percent), mark(cfr.Level))

    b.WriteString("\nDetails\n")
    fmt.Fprintf(&b, "  Lead time:    %.1f-%.1f days across %d resolved issues\n", lt.Min, lt.Max, lt.Count)
    fmt.Fprintf(&b, "  Deployments:  %s\n", df.Frequency)
    fmt.Fprintf(&b, "  MTTR:         %d bugs in population\n", mttr.Count)
    fmt.Fprintf(&b, "  Failures:     %d/%d issues are bugs, %d critical (%.1f%%)\n",
        cfr.BugIssues, cfr.TotalIssues, cfr.CriticalBugs, cfr.CriticalPercent)

    var recs []string
    if needsWork(lt.Level) { recs = append(recs, "Reduce lead time with smaller, more frequent releases") }
    if needsWork(df.Level) { recs = append(recs, "Increase deployment frequency toward daily releases") }
    if needsWork(mttr.Level) { recs = append(recs, "Improve incident response and monitoring to cut recovery time") }
    if needsWork(cfr.Level) { recs = append(recs, "Strengthen test coverage and quality gates to lower the failure rate") }
    if len(recs) > 0 {
        b.WriteString("\nRecommendations\n")
        for _, r := range recs { fmt.Fprintf(&b, "  - %s\n", r) }
    }
    return b.String()
}
