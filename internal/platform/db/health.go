package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Health reports the database connectivity state for the health endpoint.
type Health struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CheckHealth pings the database with a short timeout.
func CheckHealth(ctx context.Context, pool *pgxpool.Pool) Health {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := pool.Ping(ctx); err != nil {
		return Health{Status: "unavailable", Error: err.Error()}
	}
	return Health{Status: "ok", Latency: time.Since(start).String()}
}
