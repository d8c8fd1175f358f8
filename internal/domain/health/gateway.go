package health

import "context"

// Pinger is a liveness probe over a dependency (item store, upstream).
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}
