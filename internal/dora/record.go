/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */

// Package dora computes the four DORA delivery-performance indicators (lead
// time for changes, deployment frequency, mean time to recovery, change
// failure rate) from raw issue-tracker records and classifies each against the
// industry benchmark tiers. The package does no I/O: callers hand it a slice
// of decoded records and get back a plain summary struct.
package dora

import "time"

// Record is one raw issue as decoded from tracker JSON. Depending on which
// API path produced it, the interesting fields sit either at the top level or
// nested one level under "fields"; the two shapes were never unified upstream,
// so the accessors probe both locations, top level first. A missing or
// unparseable field is reported as absent, never as an error.
type Record map[string]any

var timeLayouts = []string{
    time.RFC3339Nano,
    time.RFC3339,
    "2006-01-02T15:04:05.000-0700",
    "2006-01-02T15:04:05-0700",
    "2006-01-02 15:04:05",
    "2006-01-02",
}

func parseTime(v any) (time.Time, bool) {
    s, _ := v.(string)
    if s == "" { return time.Time{}, false }
    for _, l := range timeLayouts {
        if t, err := time.Parse(l, s); err == nil { return t.UTC(), true }
    }
    return time.Time{}, false
}

// candidates returns the raw values present for name, top level before the
// "fields"-nested location.
func (r Record) candidates(name string) []any {
    out := make([]any, 0, 2)
    if v, ok := r[name]; ok && v != nil { out = append(out, v) }
    if f, ok := r["fields"].(map[string]any); ok {
        if v, ok := f[name]; ok && v != nil { out = append(out, v) }
    }
    return out
}

func (r Record) timeField(name string) (time.Time, bool) {
    for _, v := range r.candidates(name) {
        if t, ok := parseTime(v); ok { return t, true }
    }
    return time.Time{}, false
}

// nameOf unwraps Jira's {"name": "..."} option objects; flat exports carry the
// bare string instead.
func nameOf(v any) string {
    switch t := v.(type) {
    case string:
        return t
    case map[string]any:
        if s, ok := t["name"].(string); ok { return s }
    }
    return ""
}

func (r Record) stringField(name string) string {
    for _, v := range r.candidates(name) {
        if s := nameOf(v); s != "" { return s }
    }
    return ""
}

// CreatedAt reports when the issue was opened.
func (r Record) CreatedAt() (time.Time, bool) { return r.timeField("created") }

// ResolvedAt reports when the issue was resolved. Absence means the issue is
// still open.
func (r Record) ResolvedAt() (time.Time, bool) { return r.timeField("resolutiondate") }

// IssueType returns the issue type name, or "" when absent.
func (r Record) IssueType() string { return r.stringField("issuetype") }

// Priority returns the priority name, or "" when absent.
func (r Record) Priority() string { return r.stringField("priority") }

// Key returns the issue key. It plays no part in any calculation and exists
// for logging only.
func (r Record) Key() string {
    s, _ := r["key"].(string)
    return s
}
