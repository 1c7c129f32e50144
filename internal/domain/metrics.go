package domain

// NetworkMetrics is the QoS summary shown on the results page
type NetworkMetrics struct {
	Latency    float64 `json:"latency"`
	PacketLoss float64 `json:"packetLoss"`
	Jitter     float64 `json:"jitter"`
}

// PlaceholderMetrics returns the fixed values reported until real
// measurement is wired in. They do not depend on the topology.
func PlaceholderMetrics() NetworkMetrics {
	return NetworkMetrics{
		Latency:    4,
		PacketLoss: 2,
		Jitter:     2,
	}
}
