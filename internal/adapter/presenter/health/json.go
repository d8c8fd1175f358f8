package healthjson

import (
	"net/http"
	"time"

	domain "marketwatch/internal/domain/health"
	usecase "marketwatch/internal/usecase/health"
)

type Response struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	WorldName string            `json:"worldName"`
	Version   string            `json:"version,omitempty"`
	Commit    string            `json:"commit,omitempty"`
	BuildTime string            `json:"buildTime,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func Map(out usecase.ReadinessOutput) (int, Response) {
	code := http.StatusOK
	if out.Status == domain.StatusDegraded {
		code = http.StatusServiceUnavailable
	}
	resp := Response{
		Status:    string(out.Status),
		Timestamp: out.Now.Format(time.RFC3339),
		WorldName: out.WorldName,
		Version:   out.Version,
		Commit:    out.Commit,
		BuildTime: out.BuildTime,
		Uptime:    out.Uptime.String(),
		Checks:    map[string]string{},
	}
	for k, v := range out.Checks {
		resp.Checks[k] = string(v)
	}
	return code, resp
}
