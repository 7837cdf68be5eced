package models

// Health is the process health report. It is a pure read with no
// dependency on the entity store.
type Health struct {
	Status        int     `json:"status"`
	StatusMessage string  `json:"status_message"`
	Timestamp     string  `json:"timestamp"`
	IPAddress     string  `json:"ip_address"`
	Echo          *string `json:"echo"`
	PathEcho      *string `json:"path_echo"`
}
