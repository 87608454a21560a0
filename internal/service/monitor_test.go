package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

func TestMonitor_CheckNetworkHealth_Delegates(t *testing.T) {
	gw := &stubGateway{metrics: models.Metrics{MPCNodes: 32, NetworkHealth: models.HealthHealthy}}
	mon := NewMonitorService(gw, logger.Nop())

	m := mon.CheckNetworkHealth(context.Background())

	assert.Equal(t, 32, m.MPCNodes)
	assert.Equal(t, models.HealthHealthy, m.NetworkHealth)
}

func TestMonitor_CheckNetworkHealth_OfflineGateway(t *testing.T) {
	gw := &stubGateway{metrics: models.OfflineMetrics()}
	mon := NewMonitorService(gw, logger.Nop())

	m := mon.CheckNetworkHealth(context.Background())

	assert.Equal(t, models.HealthOffline, m.NetworkHealth)
	assert.Zero(t, m.MPCNodes)
}

// ── Session bookkeeping ──────────────────────────────────────────────────────

func TestMonitor_SessionLifecycle(t *testing.T) {
	mon := NewMonitorService(&stubGateway{}, logger.Nop())

	session := mon.CreateSession()
	require.NotEmpty(t, session.SessionID)
	assert.Equal(t, models.SessionActive, session.Status)
	assert.Nil(t, session.EndTime)

	mon.TrackOperation(session.SessionID, 128)
	mon.TrackOperation(session.SessionID, 64)

	got, ok := mon.GetSession(session.SessionID)
	require.True(t, ok)
	assert.Equal(t, 2, got.OperationCount)
	assert.Equal(t, int64(192), got.TotalDataSize)

	mon.EndSession(session.SessionID, true)

	got, ok = mon.GetSession(session.SessionID)
	require.True(t, ok)
	assert.Equal(t, models.SessionCompleted, got.Status)
	require.NotNil(t, got.EndTime)
	assert.False(t, got.EndTime.Before(got.StartTime))
}

func TestMonitor_EndSession_Failure(t *testing.T) {
	mon := NewMonitorService(&stubGateway{}, logger.Nop())
	session := mon.CreateSession()

	mon.EndSession(session.SessionID, false)

	got, _ := mon.GetSession(session.SessionID)
	assert.Equal(t, models.SessionFailed, got.Status)
}

func TestMonitor_EndSession_Twice_KeepsFirstOutcome(t *testing.T) {
	mon := NewMonitorService(&stubGateway{}, logger.Nop())
	session := mon.CreateSession()

	mon.EndSession(session.SessionID, false)
	mon.EndSession(session.SessionID, true)

	got, _ := mon.GetSession(session.SessionID)
	assert.Equal(t, models.SessionFailed, got.Status, "already ended session must not be reopened")
}

func TestMonitor_UnknownSession(t *testing.T) {
	mon := NewMonitorService(&stubGateway{}, logger.Nop())

	_, ok := mon.GetSession("session_0_missing")
	assert.False(t, ok)

	assert.NotPanics(t, func() {
		mon.TrackOperation("session_0_missing", 1)
		mon.EndSession("session_0_missing", true)
	})
}

func TestMonitor_GetSession_ReturnsCopy(t *testing.T) {
	mon := NewMonitorService(&stubGateway{}, logger.Nop())
	session := mon.CreateSession()

	got, _ := mon.GetSession(session.SessionID)
	got.OperationCount = 99

	fresh, _ := mon.GetSession(session.SessionID)
	assert.Zero(t, fresh.OperationCount, "mutating a returned session must not affect bookkeeping")
}

func TestMonitor_SessionIDsAreUnique(t *testing.T) {
	mon := NewMonitorService(&stubGateway{}, logger.Nop())

	a := mon.CreateSession()
	b := mon.CreateSession()

	assert.NotEqual(t, a.SessionID, b.SessionID)
}
