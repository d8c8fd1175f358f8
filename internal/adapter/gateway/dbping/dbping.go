package dbping

import (
	"context"
	"database/sql"
)

// DBPing reports item-store liveness for the health endpoint.
type DBPing struct {
	DB     *sql.DB
	Driver string // "postgres" or "sqlite", for the check name
}

func (d DBPing) Name() string {
	if d.Driver != "" {
		return "store(" + d.Driver + ")"
	}
	return "store"
}

func (d DBPing) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}
