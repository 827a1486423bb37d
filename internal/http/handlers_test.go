package http

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "sync"
    "testing"

    "github.com/HamedShams/dora-pulse/internal/config"
    "github.com/HamedShams/dora-pulse/internal/domain"
    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"
)

type fakeService struct {
    mu       sync.Mutex
    ranChats []int64
    helped   []int64
    latest   json.RawMessage
}

func (f *fakeService) RunScheduled(context.Context) error { return nil }

func (f *fakeService) RunOnDemand(_ context.Context, chatID int64) error {
    f.mu.Lock(); defer f.mu.Unlock()
    f.ranChats = append(f.ranChats, chatID)
    return nil
}

func (f *fakeService) SendHelp(_ context.Context, chatID int64) error {
    f.mu.Lock(); defer f.mu.Unlock()
    f.helped = append(f.helped, chatID)
    return nil
}

func (f *fakeService) LastRun(context.Context) (*domain.AnalysisRun, error) {
    return &domain.AnalysisRun{Project: "PROJ", Success: true}, nil
}

func (f *fakeService) LatestResult(context.Context, string) (json.RawMessage, error) {
    return f.latest, nil
}

func (f *fakeService) History(_ context.Context, _ string, kpi string, _ int) ([]domain.MetricValue, error) {
    return []domain.MetricValue{{Name: kpi, Value: 4.2}}, nil
}

func newTestRouter(svc service) *gin.Engine {
    gin.SetMode(gin.TestMode)
    cfg := config.Config{AppEnv: "test", TelegramWebhookSecret: "s3cret", TelegramChatIDs: []int64{42}}
    return NewRouter(cfg, zerolog.Nop(), svc)
}

func TestHealthz(t *testing.T) {
    w := httptest.NewRecorder()
    newTestRouter(&fakeService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
    if w.Code != http.StatusOK { t.Fatalf("status %d", w.Code) }
}

func TestLatest_NotFoundBeforeFirstRun(t *testing.T) {
    w := httptest.NewRecorder()
    newTestRouter(&fakeService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dora/latest", nil))
    if w.Code != http.StatusNotFound { t.Fatalf("expected 404, got %d", w.Code) }
}

func TestLatest_ServesStoredDocument(t *testing.T) {
    svc := &fakeService{latest: json.RawMessage(`{"total_issues_analyzed": 7}`)}
    w := httptest.NewRecorder()
    newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dora/latest", nil))
    if w.Code != http.StatusOK { t.Fatalf("status %d", w.Code) }
    if !strings.Contains(w.Body.String(), `"total_issues_analyzed": 7`) {
        t.Fatalf("unexpected body: %s", w.Body.String())
    }
}

func TestHistory_DefaultsToLeadTime(t *testing.T) {
    w := httptest.NewRecorder()
    newTestRouter(&fakeService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dora/history", nil))
    if w.Code != http.StatusOK { t.Fatalf("status %d", w.Code) }
    if !strings.Contains(w.Body.String(), `"kpi":"lead_time_days"`) {
        t.Fatalf("expected default kpi in body: %s", w.Body.String())
    }
    if !strings.Contains(w.Body.String(), `"value":4.2`) {
        t.Fatalf("expected history values in body: %s", w.Body.String())
    }
}

func TestRunNow_Queues(t *testing.T) {
    w := httptest.NewRecorder()
    newTestRouter(&fakeService{}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/run", nil))
    if w.Code != http.StatusAccepted { t.Fatalf("expected 202, got %d", w.Code) }
}

func TestTelegramWebhook_RejectsBadSecret(t *testing.T) {
    w := httptest.NewRecorder()
    req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(`{}`))
    req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "wrong")
    newTestRouter(&fakeService{}).ServeHTTP(w, req)
    if w.Code != http.StatusForbidden { t.Fatalf("expected 403, got %d", w.Code) }
}

func TestTelegramWebhook_IgnoresUnknownChat(t *testing.T) {
    svc := &fakeService{}
    w := httptest.NewRecorder()
    body := `{"message": {"chat": {"id": 999}, "text": "/dora"}}`
    req := httptest.NewRequest(http.MethodPost, "/telegram/webhook/s3cret", strings.NewReader(body))
    req.Header.Set("Content-Type", "application/json")
    newTestRouter(svc).ServeHTTP(w, req)
    if w.Code != http.StatusOK { t.Fatalf("status %d", w.Code) }
    svc.mu.Lock(); defer svc.mu.Unlock()
    if len(svc.ranChats) != 0 { t.Fatalf("unconfigured chat should be ignored: %#v", svc.ranChats) }
}
