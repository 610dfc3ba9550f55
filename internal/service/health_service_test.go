package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestHealthCheckAllUp(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")

	svc := NewHealthService(func(context.Context) error { return nil }, db)
	report := svc.Check(context.Background())

	assert.True(t, report.Healthy())
	assert.Equal(t, map[string]string{"store": HealthStatusUp, "redis": HealthStatusUp}, report.Components)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheckRedisDown(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectPing().SetErr(errors.New("connection refused"))

	svc := NewHealthService(func(context.Context) error { return nil }, db)
	report := svc.Check(context.Background())

	assert.False(t, report.Healthy())
	assert.Equal(t, HealthStatusDown, report.Components["redis"])
	assert.Equal(t, HealthStatusUp, report.Components["store"])
}

func TestHealthCheckDisabledComponents(t *testing.T) {
	report := NewHealthService(nil, nil).Check(context.Background())

	assert.True(t, report.Healthy())
	assert.Equal(t, HealthStatusDisabled, report.Components["store"])
	assert.Equal(t, HealthStatusDisabled, report.Components["redis"])
}

func TestHealthCheckStoreDown(t *testing.T) {
	svc := NewHealthService(func(context.Context) error { return errors.New("no reachable servers") }, nil)
	report := svc.Check(context.Background())

	assert.False(t, report.Healthy())
	assert.Equal(t, HealthStatusDown, report.Components["store"])
}
