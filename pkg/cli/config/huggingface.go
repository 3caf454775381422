package config

import "github.com/urfave/cli/v3"

// HuggingFace holds Hugging Face hub configuration
type HuggingFace struct {
	Token string
}

// Flags returns CLI flags for Hugging Face configuration
func (c *HuggingFace) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "hf-token",
			Usage:       "Hugging Face user access token with write permission",
			Destination: &c.Token,
			Sources:     cli.EnvVars("SPACESYNC_HF_TOKEN", "HF_TOKEN"),
		},
	}
}
