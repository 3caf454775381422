package config

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

// Engine holds mirror engine configuration
type Engine struct {
	CacheDir string
}

// Flags returns CLI flags for the mirror engine
func (c *Engine) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cache-dir",
			Usage:       "Directory holding the bare cache repositories",
			Value:       defaultCacheDir(),
			Destination: &c.CacheDir,
			Sources:     cli.EnvVars("SPACESYNC_CACHE_DIR"),
		},
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "spacesync")
	}
	return filepath.Join(os.TempDir(), "spacesync")
}
