// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package service

import (
	"context"
	"sync"
	"time"

	"github.com/cryptatrack/cryptatrack/internal/adapter"
	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

type monitorService struct {
	gateway adapter.ComputeGateway
	logger  *logger.Logger

	mu       sync.Mutex
	sessions map[string]*models.ComputeSession
}

// NewMonitorService builds a [MonitorService]. The session map lives inside
// the constructed monitor and dies with the process.
func NewMonitorService(gateway adapter.ComputeGateway, log *logger.Logger) MonitorService {
	return &monitorService{
		gateway:  gateway,
		logger:   log,
		sessions: map[string]*models.ComputeSession{},
	}
}

// CheckNetworkHealth implements [MonitorService]. The gateway already
// collapses every failure into offline metrics, so this method cannot fail.
func (s *monitorService) CheckNetworkHealth(ctx context.Context) models.Metrics {
	return s.gateway.CheckNetworkHealth(ctx)
}

// CreateSession implements [MonitorService].
func (s *monitorService) CreateSession() models.ComputeSession {
	session := models.ComputeSession{
		SessionID: adapter.NewSessionID(),
		StartTime: time.Now(),
		Status:    models.SessionActive,
	}

	s.mu.Lock()
	s.sessions[session.SessionID] = &session
	s.mu.Unlock()

	s.logger.Debug().Str("session", session.SessionID).Msg("compute session created")
	return session
}

// GetSession implements [MonitorService]. The returned session is a copy;
// mutating it does not affect the monitor's bookkeeping.
func (s *monitorService) GetSession(sessionID string) (models.ComputeSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return models.ComputeSession{}, false
	}
	return *session, true
}

// TrackOperation implements [MonitorService]. Unknown session IDs are
// ignored.
func (s *monitorService) TrackOperation(sessionID string, dataSize int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	session.OperationCount++
	session.TotalDataSize += dataSize
}

// EndSession implements [MonitorService]. Ending an unknown or already ended
// session is a no-op.
func (s *monitorService) EndSession(sessionID string, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.EndTime != nil {
		return
	}

	now := time.Now()
	session.EndTime = &now
	if success {
		session.Status = models.SessionCompleted
	} else {
		session.Status = models.SessionFailed
	}
}
