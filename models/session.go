package models

import "time"

// SessionStatus is the lifecycle state of a compute session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
)

// ComputeSession is in-memory bookkeeping for one compute session. Sessions
// are created on demand and ended explicitly; a process restart loses them.
type ComputeSession struct {
	SessionID      string        `json:"sessionId"`
	StartTime      time.Time     `json:"startTime"`
	EndTime        *time.Time    `json:"endTime,omitempty"`
	OperationCount int           `json:"operationCount"`
	TotalDataSize  int64         `json:"totalDataSize"`
	Status         SessionStatus `json:"status"`
}
