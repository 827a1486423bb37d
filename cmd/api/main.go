/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "context"
    "os"
    "os/signal"
    "strings"
    "syscall"
    "time"

    "github.com/joho/godotenv"

    "github.com/HamedShams/dora-pulse/internal/adapters/jira"
    "github.com/HamedShams/dora-pulse/internal/adapters/openai"
    "github.com/HamedShams/dora-pulse/internal/adapters/telegram"
    "github.com/HamedShams/dora-pulse/internal/config"
    httpx "github.com/HamedShams/dora-pulse/internal/http"
    "github.com/HamedShams/dora-pulse/internal/jobs"
    "github.com/HamedShams/dora-pulse/internal/logger"
    "github.com/HamedShams/dora-pulse/internal/repo"
    "github.com/HamedShams/dora-pulse/internal/services"
)

func main() {
    _ = godotenv.Load()
    cfg := config.Load()
    log := logger.New(cfg)
    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()

    // DB
    db := repo.MustOpen(ctx, cfg, log)
    defer db.Close()
    repository := repo.NewRepository(db, log)

    // Adapters
    jc := jira.NewClient(cfg, log)
    tg := telegram.NewClient(cfg, log)
    var llm services.LLM
    if cfg.OpenAIKey != "" { llm = openai.NewClient(cfg, log) }

    // Services
    svc := services.New(cfg, log, repository, jc, llm, tg)

    // HTTP server (Gin)
    router := httpx.NewRouter(cfg, log, svc)

    // Register Telegram webhook only if PUBLIC_BASE_URL is HTTPS
    if cfg.TelegramWebhookSecret != "" && strings.HasPrefix(strings.ToLower(cfg.PublicBaseURL), "https://") {
        go func(){
            ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second); defer cancel()
            base := strings.TrimRight(cfg.PublicBaseURL, "/")
            webhookURL := base + "/telegram/webhook/" + cfg.TelegramWebhookSecret
            if err := tg.SetWebhook(ctx, webhookURL, cfg.TelegramWebhookSecret); err != nil {
                log.Error().Err(err).Str("url", webhookURL).Msg("telegram setWebhook failed")
            } else {
                log.Info().Str("url", webhookURL).Msg("telegram setWebhook ok")
            }
        }()
    }

    // Cron
    cr := jobs.NewCron(cfg, log, svc, repository)
    cr.Start()
    defer cr.Stop()

    // graceful shutdown
    errCh := make(chan error, 1)
    go func() { errCh <- router.Run(cfg.HTTPAddr) }()

    sigCh := make(chan os.Signal, 1)
    signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

    select {
    case <-sigCh:
        log.Info().Msg("shutting down...")
    case err := <-errCh:
        if err != nil { log.Error().Err(err).Msg("http server error") }
    }

    time.Sleep(500 * time.Millisecond)
}
