package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spacesync-dev/spacesync/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Mirrors holds the mirror definition file configuration.
//
// The file is TOML with one [[mirror]] table per mirror:
//
//	[[mirror]]
//	name = "cannes-dashboard"
//	branch = "main"
//
//	[mirror.github]
//	repo = "acme/cannes-dashboard"
//
//	[mirror.huggingface]
//	repo = "acme/cannes-dashboard"
//	kind = "space"
type Mirrors struct {
	Path string
}

type mirrorsFile struct {
	Mirror []*model.Mirror `toml:"mirror"`
}

// Flags returns CLI flags for the mirror definition file
func (c *Mirrors) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the mirror definition file (TOML)",
			Required:    true,
			Destination: &c.Path,
			Sources:     cli.EnvVars("SPACESYNC_CONFIG"),
		},
	}
}

// Load reads and validates the mirror definitions
func (c *Mirrors) Load() ([]*model.Mirror, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read mirror definition file", goerr.V("path", c.Path))
	}
	return ParseMirrors(data)
}

// ParseMirrors decodes and validates mirror definitions from TOML
func ParseMirrors(data []byte) ([]*model.Mirror, error) {
	var file mirrorsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse mirror definition file")
	}

	if len(file.Mirror) == 0 {
		return nil, goerr.New("no mirrors defined")
	}

	seen := make(map[string]struct{}, len(file.Mirror))
	for _, m := range file.Mirror {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[m.Name]; ok {
			return nil, goerr.New("duplicate mirror name", goerr.V("mirror", m.Name))
		}
		seen[m.Name] = struct{}{}
	}

	return file.Mirror, nil
}
