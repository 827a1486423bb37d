package repo

import (
    "context"
    "errors"
    "time"

    "github.com/HamedShams/dora-pulse/internal/config"
    "github.com/HamedShams/dora-pulse/internal/domain"
    "github.com/google/uuid"
    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/rs/zerolog"
)

type DB struct {
    Pool *pgxpool.Pool
    log  zerolog.Logger
}

func MustOpen(ctx context.Context, cfg config.Config, log zerolog.Logger) *DB {
    pool, err := pgxpool.New(ctx, cfg.DBDSN)
    if err != nil { log.Fatal().Err(err).Msg("db connect failed") }
    ctx2, cancel := context.WithTimeout(ctx, 10*time.Second); defer cancel()
    if err := pool.Ping(ctx2); err != nil { log.Fatal().Err(err).Msg("db ping failed") }
    return &DB{Pool: pool, log: log}
}

func (d *DB) Close() { d.Pool.Close() }

type Repository struct {
    db  *DB
    log zerolog.Logger
}

func NewRepository(d *DB, log zerolog.Logger) *Repository { return &Repository{db: d, log: log} }

func (r *Repository) TryAdvisoryLock(ctx context.Context, key int64) (bool, error) {
    var ok bool
    err := r.db.Pool.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", key).Scan(&ok)
    return ok, err
}

func (r *Repository) AdvisoryUnlock(ctx context.Context, key int64) error {
    var ok bool
    err := r.db.Pool.QueryRow(ctx, "SELECT pg_advisory_unlock($1)", key).Scan(&ok)
    if !ok && err == nil { return errors.New("advisory unlock returned false") }
    return err
}

// StartRun opens a dora_runs row; FinishRun closes it with the outcome.
func (r *Repository) StartRun(ctx context.Context, project string) (uuid.UUID, error) {
    id := uuid.New()
    const q = `INSERT INTO dora_runs(id, project, started_at, success) VALUES($1,$2,now(),false)`
    if _, err := r.db.Pool.Exec(ctx, q, id, project); err != nil { return uuid.Nil, err }
    return id, nil
}

func (r *Repository) FinishRun(ctx context.Context, id uuid.UUID, issues int, resultJSON []byte, success bool, errStr string) error {
    const q = `UPDATE dora_runs SET finished_at=now(), issues_analyzed=$2, result=$3, success=$4, error=$5 WHERE id=$1`
    var res any
    if len(resultJSON) > 0 { res = resultJSON }
    _, err := r.db.Pool.Exec(ctx, q, id, issues, res, success, errStr)
    return err
}

// InsertMetricValues flattens one run's headline numbers into dora_metrics.
func (r *Repository) InsertMetricValues(ctx context.Context, runID uuid.UUID, values map[string]float64) error {
    if len(values) == 0 { return nil }
    batch := &pgx.Batch{}
    const q = `INSERT INTO dora_metrics(run_id, kpi, value) VALUES($1,$2,$3)
        ON CONFLICT (run_id, kpi) DO UPDATE SET value=EXCLUDED.value`
    for k, v := range values { batch.Queue(q, runID, k, v) }
    br := r.db.Pool.SendBatch(ctx, batch)
    defer br.Close()
    for range values { if _, err := br.Exec(); err != nil { return err } }
    return nil
}

func (r *Repository) GetLastRun(ctx context.Context) (*domain.AnalysisRun, error) {
    const q = `SELECT id, COALESCE(project,''), started_at, finished_at,
        COALESCE(issues_analyzed,0), COALESCE(success,false), COALESCE(error,'')
        FROM dora_runs ORDER BY started_at DESC LIMIT 1`
    row := r.db.Pool.QueryRow(ctx, q)
    run := &domain.AnalysisRun{}
    if err := row.Scan(&run.ID, &run.Project, &run.StartedAt, &run.FinishedAt,
        &run.IssuesAnalyzed, &run.Success, &run.Error); err != nil {
        if errors.Is(err, pgx.ErrNoRows) { return nil, nil }
        return nil, err
    }
    return run, nil
}

// GetLatestResult returns the most recent successful result document as raw
// JSON, or nil when no run has succeeded yet.
func (r *Repository) GetLatestResult(ctx context.Context, project string) ([]byte, error) {
    const q = `SELECT result FROM dora_runs
        WHERE success AND result IS NOT NULL AND ($1 = '' OR project = $1)
        ORDER BY started_at DESC LIMIT 1`
    var out []byte
    if err := r.db.Pool.QueryRow(ctx, q, project).Scan(&out); err != nil {
        if errors.Is(err, pgx.ErrNoRows) { return nil, nil }
        return nil, err
    }
    return out, nil
}

// MetricHistory lists a kpi's values across recent runs, newest first.
func (r *Repository) MetricHistory(ctx context.Context, project, kpi string, limit int) ([]domain.MetricValue, error) {
    if limit <= 0 { limit = 12 }
    rows, err := r.db.Pool.Query(ctx, `SELECT m.run_id, m.kpi, m.value
        FROM dora_metrics m JOIN dora_runs r ON r.id = m.run_id
        WHERE m.kpi = $2 AND ($1 = '' OR r.project = $1)
        ORDER BY r.started_at DESC LIMIT $3`, project, kpi, limit)
    if err != nil { return nil, err }
    defer rows.Close()
    var out []domain.MetricValue
    for rows.Next() {
        var mv domain.MetricValue
        if err := rows.Scan(&mv.RunID, &mv.Name, &mv.Value); err != nil { return nil, err }
        out = append(out, mv)
    }
    return out, rows.Err()
}
