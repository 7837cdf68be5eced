package service

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/campusworks/student-records-api/internal/models"
)

// HealthService reports process health. It is a pure read with no
// dependency on the entity store.
type HealthService struct{}

// NewHealthService constructs HealthService.
func NewHealthService() *HealthService {
	return &HealthService{}
}

// Check builds a health report, echoing the optional inputs back.
func (s *HealthService) Check(echo, pathEcho *string) models.Health {
	return models.Health{
		Status:        http.StatusOK,
		StatusMessage: "OK",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		IPAddress:     resolveHostIP(),
		Echo:          echo,
		PathEcho:      pathEcho,
	}
}

func resolveHostIP() string {
	host, err := os.Hostname()
	if err != nil {
		return "127.0.0.1"
	}
	addrs, err := net.LookupHost(host)
	if err != nil || len(addrs) == 0 {
		return "127.0.0.1"
	}
	return addrs[0]
}
