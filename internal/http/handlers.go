/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
    "context"
    "encoding/json"
    "net/http"
    "strconv"

    "github.com/HamedShams/dora-pulse/internal/config"
    "github.com/HamedShams/dora-pulse/internal/domain"
    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"
)

type service interface {
    RunScheduled(ctx context.Context) error
    RunOnDemand(ctx context.Context, chatID int64) error
    SendHelp(ctx context.Context, chatID int64) error
    LastRun(ctx context.Context) (*domain.AnalysisRun, error)
    LatestResult(ctx context.Context, project string) (json.RawMessage, error)
    History(ctx context.Context, project, kpi string, limit int) ([]domain.MetricValue, error)
}

type Handlers struct {
    cfg config.Config
    log zerolog.Logger
    svc service
}

func NewHandlers(cfg config.Config, log zerolog.Logger, svc service) *Handlers {
    return &Handlers{cfg: cfg, log: log, svc: svc}
}

func (h *Handlers) Healthz(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) LastRun(c *gin.Context) {
    run, err := h.svc.LastRun(c.Request.Context())
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, run)
}

func (h *Handlers) Latest(c *gin.Context) {
    res, err := h.svc.LatestResult(c.Request.Context(), c.Query("project"))
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    if len(res) == 0 {
        c.JSON(http.StatusNotFound, gin.H{"error": "no analysis yet"})
        return
    }
    c.Data(http.StatusOK, "application/json", res)
}

func (h *Handlers) History(c *gin.Context) {
    kpi := c.DefaultQuery("kpi", "lead_time_days")
    limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
    values, err := h.svc.History(c.Request.Context(), c.Query("project"), kpi, limit)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"kpi": kpi, "values": values})
}

func (h *Handlers) RunNow(c *gin.Context) {
    // Run in background detached from the HTTP request to avoid context cancellation
    go func(){ _ = h.svc.RunScheduled(context.Background()) }()
    c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

func (h *Handlers) TelegramWebhook(c *gin.Context) {
    headerSecret := c.GetHeader("X-Telegram-Bot-Api-Secret-Token")
    pathSecret := c.Param("secret")
    // Accept either header secret (preferred) or path secret
    if headerSecret != h.cfg.TelegramWebhookSecret && pathSecret != h.cfg.TelegramWebhookSecret {
        c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
        return
    }
    h.log.Info().Str("ip", c.ClientIP()).Msg("telegram webhook received")

    var upd struct {
        Message *struct {
            Chat struct { ID int64 `json:"id"` } `json:"chat"`
            Text string `json:"text"`
        } `json:"message"`
    }
    if err := c.ShouldBindJSON(&upd); err == nil && upd.Message != nil {
        chatID := upd.Message.Chat.ID
        text := upd.Message.Text
        // accept only configured chats if provided
        allowed := len(h.cfg.TelegramChatIDs) == 0
        if !allowed {
            for _, id := range h.cfg.TelegramChatIDs { if id == chatID { allowed = true; break } }
        }
        if allowed {
            switch text {
            case "/dora":
                go func(){ _ = h.svc.RunOnDemand(context.Background(), chatID) }()
            case "/start", "/help":
                go func(){ _ = h.svc.SendHelp(context.Background(), chatID) }()
            }
        }
    }

    c.JSON(http.StatusOK, gin.H{"ok": true})
}
