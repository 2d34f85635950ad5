package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"hrm/internal/platform/config"
	"hrm/internal/platform/querier"
)

const (
	JobIdempotencyPurge = "idempotency_purge"
	JobAuditRetention   = "audit_retention"
)

// Service runs housekeeping work on a single background worker and keeps a
// job_runs row per execution.
type Service struct {
	DB                 querier.Querier
	Interval           time.Duration
	IdempotencyTTL     time.Duration
	AuditRetentionDays int
	Now                func() time.Time
	queue              chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db querier.Querier, cfg config.Config) *Service {
	return &Service{
		DB:                 db,
		Interval:           cfg.MaintenanceInterval,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		AuditRetentionDays: cfg.AuditRetentionDays,
		Now:                time.Now,
		queue:              make(chan job, 16),
	}
}

// Start launches the worker and, when an interval is configured, the
// maintenance ticker. Both stop when ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Interval > 0 {
		go s.schedule(ctx, s.Interval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// EnqueueMaintenance queues every housekeeping job that is enabled.
func (s *Service) EnqueueMaintenance() {
	now := s.Now()
	if s.IdempotencyTTL > 0 {
		cutoff := now.Add(-s.IdempotencyTTL)
		s.Enqueue(JobIdempotencyPurge, func(ctx context.Context) (any, error) {
			deleted, err := s.PurgeIdempotencyKeys(ctx, cutoff)
			return map[string]any{"cutoff": cutoff, "deleted": deleted}, err
		})
	}
	if s.AuditRetentionDays > 0 {
		cutoff := now.AddDate(0, 0, -s.AuditRetentionDays)
		s.Enqueue(JobAuditRetention, func(ctx context.Context) (any, error) {
			deleted, err := s.PurgeAuditEvents(ctx, cutoff)
			return map[string]any{"cutoff": cutoff, "deleted": deleted}, err
		})
	}
}

func (s *Service) PurgeIdempotencyKeys(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.DB.Exec(ctx, `DELETE FROM idempotency_keys WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Service) PurgeAuditEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.DB.Exec(ctx, `DELETE FROM audit_events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1, $2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) schedule(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EnqueueMaintenance()
		}
	}
}
