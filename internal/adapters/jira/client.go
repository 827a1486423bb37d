/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package jira

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "os"
    "strings"
    "time"

    "github.com/HamedShams/dora-pulse/internal/config"
    "github.com/rs/zerolog"
)

var searchFields = []string{"key", "summary", "issuetype", "created", "resolutiondate", "priority", "status"}

type Client struct {
    baseURL  string
    token    string
    basic    string
    user     string
    pass     string
    http     *http.Client
    log      zerolog.Logger
    apiVer   string
    pageSize int
    maxTotal int
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    return &Client{
        baseURL:  cfg.JiraBaseURL,
        token:    cfg.JiraPAT,
        basic:    getenvBasic(),
        user:     cfg.JiraUsername,
        pass:     cfg.JiraPassword,
        http:     &http.Client{ Timeout: cfg.HTTPTimeout },
        log:      log,
        apiVer:   cfg.JiraAPIVersion,
        pageSize: cfg.JiraPageSize,
        maxTotal: cfg.JiraMaxIssues,
    }
}

// getenvBasic reads JIRA_BASIC_AUTH from environment if present (format: user:pass base64), optional
func getenvBasic() string {
    v := ""
    if s := strings.TrimSpace(os.Getenv("JIRA_BASIC_AUTH")); s != "" { v = s }
    return v
}

func (c *Client) apiURL(path string, q url.Values) string {
    base := strings.TrimRight(c.baseURL, "/")
    if !strings.HasPrefix(path, "/") { path = "/" + path }
    u := base + path
    if q != nil && len(q) > 0 { u = u + "?" + q.Encode() }
    return u
}

func (c *Client) authorize(req *http.Request) {
    if c.token != "" { req.Header.Set("Authorization", "Bearer "+c.token); return }
    if c.user != "" && c.pass != "" { req.SetBasicAuth(c.user, c.pass); return }
    if c.basic != "" { req.Header.Set("Authorization", "Basic "+c.basic) }
}

func (c *Client) doJSON(ctx context.Context, method, u string, body any) (map[string]any, error) {
    if c.baseURL == "" { return nil, errors.New("jira: empty baseURL") }
    var payload []byte
    if body != nil {
        b, err := json.Marshal(body)
        if err != nil { return nil, err }
        payload = b
    }
    var lastErr error
    for attempt := 0; attempt < 3; attempt++ {
        var r io.Reader
        if payload != nil { r = bytes.NewReader(payload) }
        req, err := http.NewRequestWithContext(ctx, method, u, r)
        if err != nil { return nil, err }
        if payload != nil { req.Header.Set("Content-Type", "application/json") }
        c.authorize(req)
        resp, err := c.http.Do(req)
        if err != nil {
            lastErr = err
        } else {
            out, retry, derr := decodeResponse(resp)
            if derr == nil { return out, nil }
            lastErr = derr
            if !retry { return nil, derr }
        }
        // backoff
        time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
    }
    return nil, lastErr
}

// decodeResponse reports whether the failure is worth another attempt
// (429 and 5xx are, everything else is terminal).
func decodeResponse(resp *http.Response) (map[string]any, bool, error) {
    defer resp.Body.Close()
    if resp.StatusCode >= 300 {
        b, _ := io.ReadAll(resp.Body)
        err := fmt.Errorf("jira api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
        return nil, resp.StatusCode == 429 || resp.StatusCode >= 500, err
    }
    var out map[string]any
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil { return nil, false, err }
    return out, false, nil
}

// Search runs one page of a JQL query.
func (c *Client) Search(ctx context.Context, jql string, startAt, max int) (map[string]any, error) {
    if jql == "" { return nil, errors.New("jira: empty jql") }
    if c.apiVer == "2" {
        q := url.Values{}
        q.Set("jql", jql)
        if startAt > 0 { q.Set("startAt", fmt.Sprint(startAt)) }
        if max > 0 { q.Set("maxResults", fmt.Sprint(max)) }
        q.Set("fields", strings.Join(searchFields, ","))
        u := c.apiURL("/rest/api/2/search", q)
        return c.doJSON(ctx, http.MethodGet, u, nil)
    }
    // default to v3
    body := map[string]any{"jql": jql, "startAt": startAt, "maxResults": max, "fields": searchFields}
    u := c.apiURL("/rest/api/3/search", nil)
    return c.doJSON(ctx, http.MethodPost, u, body)
}

// SearchAll walks the paginated search until the query is exhausted or the
// configured issue cap is hit, returning the raw issue objects.
func (c *Client) SearchAll(ctx context.Context, jql string) ([]map[string]any, error) {
    pageSize := c.pageSize
    if pageSize <= 0 { pageSize = 100 }
    var out []map[string]any
    startAt := 0
    for {
        page, err := c.Search(ctx, jql, startAt, pageSize)
        if err != nil { return nil, err }
        issues, _ := page["issues"].([]any)
        for _, it := range issues {
            if m, ok := it.(map[string]any); ok { out = append(out, m) }
        }
        if c.maxTotal > 0 && len(out) >= c.maxTotal {
            c.log.Warn().Int("cap", c.maxTotal).Str("jql", jql).Msg("jira: issue cap reached, truncating search")
            out = out[:c.maxTotal]
            break
        }
        if len(issues) < pageSize { break }
        startAt += len(issues)
    }
    c.log.Info().Int("issues", len(out)).Str("jql", jql).Msg("jira search complete")
    return out, nil
}
