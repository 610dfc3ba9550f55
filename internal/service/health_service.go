package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"kudoswall/internal/logger"
)

const (
	HealthStatusUp       = "up"
	HealthStatusDown     = "down"
	HealthStatusDisabled = "disabled"
)

// HealthReport is returned by GET /health
type HealthReport struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	CheckedAt  time.Time         `json:"checkedAt"`
}

// Healthy reports whether every configured component answered.
func (r *HealthReport) Healthy() bool {
	return r.Status == HealthStatusUp
}

// PingFunc checks one dependency.
type PingFunc func(ctx context.Context) error

// HealthService pings the store and the cache. A nil ping or client marks the
// component as disabled.
type HealthService struct {
	pingStore PingFunc
	redis     *redis.Client
	timeout   time.Duration
}

func NewHealthService(pingStore PingFunc, redisClient *redis.Client) *HealthService {
	return &HealthService{pingStore: pingStore, redis: redisClient, timeout: 2 * time.Second}
}

func (s *HealthService) Check(ctx context.Context) *HealthReport {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report := &HealthReport{
		Status:     HealthStatusUp,
		Components: map[string]string{},
		CheckedAt:  time.Now().UTC(),
	}
	s.record(report, "store", func() error {
		return s.pingStore(ctx)
	}, s.pingStore == nil)
	s.record(report, "redis", func() error {
		return s.redis.Ping(ctx).Err()
	}, s.redis == nil)
	return report
}

func (s *HealthService) record(report *HealthReport, name string, ping func() error, disabled bool) {
	if disabled {
		report.Components[name] = HealthStatusDisabled
		return
	}
	if err := ping(); err != nil {
		logger.GetLogger().Warnw("Health check failed", "component", name, "error", err)
		report.Components[name] = HealthStatusDown
		report.Status = HealthStatusDown
		return
	}
	report.Components[name] = HealthStatusUp
}
