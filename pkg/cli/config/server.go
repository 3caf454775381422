package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr         string
	SyncInterval time.Duration
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("SPACESYNC_ADDR"),
		},
		&cli.DurationFlag{
			Name:        "sync-interval",
			Usage:       "Re-sync all mirrors at this interval regardless of webhooks (0 disables)",
			Value:       0,
			Destination: &c.SyncInterval,
			Sources:     cli.EnvVars("SPACESYNC_SYNC_INTERVAL"),
		},
	}
}
