package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spacesync-dev/spacesync/pkg/cli/config"
	"github.com/spacesync-dev/spacesync/pkg/infra/huggingface"
	"github.com/urfave/cli/v3"
)

// cmdDoctor validates credentials and reachability on both providers
// before anything touches git history.
func cmdDoctor() *cli.Command {
	var (
		mirrorsCfg config.Mirrors
		githubCfg  config.GitHub
		hfCfg      config.HuggingFace
	)

	flags := mirrorsCfg.Flags()
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, hfCfg.Flags()...)

	return &cli.Command{
		Name:  "doctor",
		Usage: "Check credentials and repository access on both providers",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			mirrors, err := mirrorsCfg.Load()
			if err != nil {
				return err
			}

			ghClient, err := githubCfg.Client()
			if err != nil {
				return err
			}
			hubClient := huggingface.New(hfCfg.Token)

			failures := 0
			check := func(name string, err error) {
				if err != nil {
					failures++
					fmt.Printf("%s %s: %v\n", color.RedString("✘"), name, err)
					return
				}
				fmt.Printf("%s %s\n", color.GreenString("✔"), name)
			}

			identity, err := ghClient.Identity(ctx)
			check(credentialLabel("GitHub credentials", identity), err)

			who, err := hubClient.WhoAmI(ctx)
			hubName := ""
			if who != nil {
				hubName = who.Name
			}
			check(credentialLabel("Hugging Face credentials", hubName), err)

			for _, m := range mirrors {
				_, err := ghClient.Repository(ctx, m.Source.Owner(), m.Source.Name())
				check(fmt.Sprintf("GitHub repository %s", m.Source.Slug), err)

				_, err = hubClient.RepoInfo(ctx, m.Target)
				check(fmt.Sprintf("Hugging Face %s %s", m.Target.Kind, m.Target.Slug), err)
			}

			if failures > 0 {
				return goerr.New("doctor found problems", goerr.V("failures", failures))
			}
			return nil
		},
	}
}

// credentialLabel appends the resolved identity when there is one; on a
// failed check the identity is empty and the label stays bare.
func credentialLabel(name, identity string) string {
	if identity == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, identity)
}
