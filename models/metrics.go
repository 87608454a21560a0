package models

// HealthState is the remote network's reported health.
type HealthState string

const (
	HealthHealthy  HealthState = "healthy"
	HealthDegraded HealthState = "degraded"
	HealthOffline  HealthState = "offline"
)

// Metrics describes the remote compute network as seen through the relay's
// health endpoint. A failed check yields zeroed counters with
// NetworkHealth=offline, never an error.
type Metrics struct {
	MPCNodes           int         `json:"mpcNodes"`
	ActiveConnections  int         `json:"activeConnections"`
	FHEOperationsCount int         `json:"fheOperationsCount"`
	AverageComputeTime float64     `json:"averageComputeTime"`
	EncryptionType     string      `json:"encryptionType"`
	NetworkHealth      HealthState `json:"networkHealth"`
}

// OfflineMetrics returns the zeroed metrics substituted when the network is
// unreachable.
func OfflineMetrics() Metrics {
	return Metrics{
		EncryptionType: "Hybrid",
		NetworkHealth:  HealthOffline,
	}
}
