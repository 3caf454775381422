package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spacesync-dev/spacesync/pkg/cli/config"
	"github.com/spacesync-dev/spacesync/pkg/domain/model"
	"github.com/spacesync-dev/spacesync/pkg/domain/types"
	"github.com/spacesync-dev/spacesync/pkg/infra/gitrepo"
	"github.com/spacesync-dev/spacesync/pkg/infra/notify"
	"github.com/spacesync-dev/spacesync/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdSync() *cli.Command {
	var (
		mirrorsCfg config.Mirrors
		engineCfg  config.Engine
		githubCfg  config.GitHub
		hfCfg      config.HuggingFace
		slackCfg   config.Slack
		target     string
	)

	flags := mirrorsCfg.Flags()
	flags = append(flags, engineCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, hfCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "mirror",
		Usage:       "Run only the named mirror (default: all)",
		Destination: &target,
	})

	return &cli.Command{
		Name:  "sync",
		Usage: "Fetch from GitHub and push to the Hugging Face remote",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			mirrors, err := mirrorsCfg.Load()
			if err != nil {
				return err
			}

			engine := gitrepo.New(engineCfg.CacheDir,
				gitrepo.WithGitHubToken(githubCfg.Token),
				gitrepo.WithHubToken(hfCfg.Token),
			)
			syncUC := usecase.NewSync(engine, mirrors,
				usecase.WithNotifier(notify.NewSlack(slackCfg.WebhookURL)),
			)

			if target != "" {
				report, err := syncUC.SyncMirror(ctx, target, types.TriggerManual)
				if err != nil {
					return err
				}
				printSyncReport(report)
				return nil
			}

			reports, err := syncUC.SyncAll(ctx, types.TriggerManual)
			for _, report := range reports {
				printSyncReport(report)
			}
			return err
		},
	}
}

func printSyncReport(r *model.SyncReport) {
	if r.UpToDate {
		fmt.Printf("%s %s (%s) already up to date at %s\n",
			color.CyanString("●"), r.Mirror, r.Branch, r.AfterHead.Short())
		return
	}
	before := r.BeforeHead.Short()
	if r.BeforeHead.IsZero() {
		before = "(none)"
	}
	fmt.Printf("%s %s (%s) pushed %s -> %s in %s\n",
		color.GreenString("✔"), r.Mirror, r.Branch,
		before, r.AfterHead.Short(), r.Duration.Round(time.Millisecond))
}
