/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"

    "github.com/HamedShams/dora-pulse/internal/config"
    "github.com/HamedShams/dora-pulse/internal/domain"
    "github.com/HamedShams/dora-pulse/internal/dora"
    "github.com/HamedShams/dora-pulse/internal/report"
    "github.com/google/uuid"
    "github.com/rs/zerolog"
)

type JiraClient interface {
    SearchAll(ctx context.Context, jql string) ([]map[string]any, error)
}

type LLM interface {
    Summarize(ctx context.Context, project string, res dora.Result) (string, error)
}

type Notifier interface {
    SendMessage(ctx context.Context, chatID int64, text string) error
}

type Store interface {
    StartRun(ctx context.Context, project string) (uuid.UUID, error)
    FinishRun(ctx context.Context, id uuid.UUID, issues int, resultJSON []byte, success bool, errStr string) error
    InsertMetricValues(ctx context.Context, runID uuid.UUID, values map[string]float64) error
    GetLastRun(ctx context.Context) (*domain.AnalysisRun, error)
    GetLatestResult(ctx context.Context, project string) ([]byte, error)
    MetricHistory(ctx context.Context, project, kpi string, limit int) ([]domain.MetricValue, error)
}

type Service struct {
    cfg   config.Config
    log   zerolog.Logger
    store Store
    jira  JiraClient
    llm   LLM
    tg    Notifier
}

func New(cfg config.Config, log zerolog.Logger, store Store, jira JiraClient, llm LLM, tg Notifier) *Service {
    return &Service{cfg: cfg, log: log, store: store, jira: jira, llm: llm, tg: tg}
}

func (s *Service) analysisJQL(project string) string {
    if s.cfg.AnalysisJQL != "" { return s.cfg.AnalysisJQL }
    return fmt.Sprintf("project = %s AND status = Done AND resolved >= -%dd ORDER BY resolved DESC",
        project, s.cfg.AnalysisLookbackDays)
}

func toRecords(issues []map[string]any) []dora.Record {
    out := make([]dora.Record, 0, len(issues))
    for _, it := range issues { out = append(out, dora.Record(it)) }
    return out
}

// headlineValues flattens each metric's classified statistic for the history
// table, keyed by the classifier's metric names.
func headlineValues(res dora.Result) map[string]float64 {
    return map[string]float64{
        string(dora.MetricLeadTimeDays):   res.LeadTime.Average,
        string(dora.MetricDeploysPerWeek): res.DeploymentFrequency.PerWeek,
        string(dora.MetricMTTRHours):      res.MTTR.AverageHours,
        string(dora.MetricFailureRate):    res.ChangeFailureRate.Percent,
    }
}

// RunProject fetches the project's resolved issues, runs the metrics engine
// and persists the outcome. Run bookkeeping failures are logged but never
// block the analysis itself.
func (s *Service) RunProject(ctx context.Context, project string) (*dora.Result, error) {
    runID, err := s.store.StartRun(ctx, project)
    if err != nil { s.log.Error().Err(err).Str("project", project).Msg("start run failed") }

    issues, err := s.jira.SearchAll(ctx, s.analysisJQL(project))
    if err != nil {
        if runID != uuid.Nil { _ = s.store.FinishRun(ctx, runID, 0, nil, false, err.Error()) }
        return nil, fmt.Errorf("fetch %s: %w", project, err)
    }

    res := dora.Analyze(toRecords(issues))
    s.log.Info().Str("project", project).Int("issues", res.TotalIssues).
        Str("lead_time", string(res.LeadTime.Level)).
        Str("deploy_freq", string(res.DeploymentFrequency.Level)).
        Str("mttr", string(res.MTTR.Level)).
        Str("failure_rate", string(res.ChangeFailureRate.Level)).
        Msg("analysis complete")

    if runID != uuid.Nil {
        b, merr := json.Marshal(res)
        if merr != nil { b = nil }
        if err := s.store.FinishRun(ctx, runID, res.TotalIssues, b, true, ""); err != nil {
            s.log.Error().Err(err).Msg("finish run failed")
        }
        if err := s.store.InsertMetricValues(ctx, runID, headlineValues(res)); err != nil {
            s.log.Error().Err(err).Msg("metric snapshot failed")
        }
    }
    return &res, nil
}

// digest renders the report and, when an LLM is configured, appends its
// narrative. A summarizer failure degrades to the plain report.
func (s *Service) digest(ctx context.Context, project string, res dora.Result) string {
    text := report.Render(project, res)
    if s.llm == nil { return text }
    summary, err := s.llm.Summarize(ctx, project, res)
    if err != nil {
        s.log.Warn().Err(err).Msg("summary skipped")
        return text
    }
    if summary != "" { text += "\n" + summary }
    return text
}

func (s *Service) notify(ctx context.Context, chatIDs []int64, text string) {
    for _, chat := range chatIDs {
        if err := s.tg.SendMessage(ctx, chat, text); err != nil {
            s.log.Error().Err(err).Int64("chat", chat).Msg("telegram send failed")
        }
    }
}

// RunScheduled analyzes every configured project and delivers the digest to
// all configured chats. One failing project does not stop the rest.
func (s *Service) RunScheduled(ctx context.Context) error {
    if len(s.cfg.JiraProjects) == 0 { return errors.New("no projects configured") }
    var firstErr error
    for _, project := range s.cfg.JiraProjects {
        res, err := s.RunProject(ctx, project)
        if err != nil {
            s.log.Error().Err(err).Str("project", project).Msg("scheduled analysis failed")
            if firstErr == nil { firstErr = err }
            continue
        }
        s.notify(ctx, s.cfg.TelegramChatIDs, s.digest(ctx, project, *res))
    }
    return firstErr
}

// RunOnDemand is the chat-command path: analyze and answer the asking chat.
func (s *Service) RunOnDemand(ctx context.Context, chatID int64) error {
    if len(s.cfg.JiraProjects) == 0 { return errors.New("no projects configured") }
    for _, project := range s.cfg.JiraProjects {
        res, err := s.RunProject(ctx, project)
        if err != nil {
            _ = s.tg.SendMessage(ctx, chatID, fmt.Sprintf("analysis failed for %s: %v", project, err))
            return err
        }
        if err := s.tg.SendMessage(ctx, chatID, s.digest(ctx, project, *res)); err != nil { return err }
    }
    return nil
}

func (s *Service) SendHelp(ctx context.Context, chatID int64) error {
    return s.tg.SendMessage(ctx, chatID,
        "Commands:\n/dora - run the DORA analysis now\n/help - this message")
}

func (s *Service) LastRun(ctx context.Context) (*domain.AnalysisRun, error) {
    return s.store.GetLastRun(ctx)
}

// LatestResult returns the newest stored result document, nil when none.
func (s *Service) LatestResult(ctx context.Context, project string) (json.RawMessage, error) {
    b, err := s.store.GetLatestResult(ctx, project)
    if err != nil { return nil, err }
    return json.RawMessage(b), nil
}

// History lists a kpi across recent runs, newest first.
func (s *Service) History(ctx context.Context, project, kpi string, limit int) ([]domain.MetricValue, error) {
    return s.store.MetricHistory(ctx, project, kpi, limit)
}
