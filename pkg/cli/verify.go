package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spacesync-dev/spacesync/pkg/cli/config"
	"github.com/spacesync-dev/spacesync/pkg/domain/model"
	"github.com/spacesync-dev/spacesync/pkg/infra/gitrepo"
	"github.com/spacesync-dev/spacesync/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdVerify() *cli.Command {
	var (
		mirrorsCfg config.Mirrors
		engineCfg  config.Engine
		githubCfg  config.GitHub
		hfCfg      config.HuggingFace
		target     string
	)

	flags := mirrorsCfg.Flags()
	flags = append(flags, engineCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, hfCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "mirror",
		Usage:       "Verify only the named mirror (default: all)",
		Destination: &target,
	})

	return &cli.Command{
		Name:  "verify",
		Usage: "Compare branch heads on both remotes",
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
			verifyUC := usecase.NewVerify(engine, mirrors)

			var reports []*model.VerifyReport
			if target != "" {
				report, err := verifyUC.VerifyMirror(ctx, target)
				if err != nil {
					return err
				}
				reports = append(reports, report)
			} else {
				reports, err = verifyUC.VerifyAll(ctx)
				if err != nil {
					return err
				}
			}

			pending := 0
			for _, report := range reports {
				printVerifyReport(report)
				if report.State != model.StateInSync {
					pending++
				}
			}

			if pending > 0 {
				return goerr.New("mirrors are not in sync", goerr.V("count", pending))
			}
			return nil
		},
	}
}

func printVerifyReport(r *model.VerifyReport) {
	var marker string
	switch r.State {
	case model.StateInSync:
		marker = color.GreenString("✔")
	case model.StatePending:
		marker = color.YellowString("~")
	default:
		marker = color.RedString("✘")
	}
	fmt.Printf("%s %s (%s) %s: github=%s hub=%s\n",
		marker, r.Mirror, r.Branch, r.State,
		orNone(r.SourceHead.Short()), orNone(r.TargetHead.Short()))
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
