package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/muddle/moodle"
)

const maxConcurrentPings = 4

var pingAll bool

// pingCmd represents the ping command
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test the connection and token of a Moodle service",
	Long: `Call core_webservice_get_site_info and print the site name, release and
token user. With --all every configured service is checked.`,
	Args: cobra.NoArgs,
	RunE: runPing,
}

func init() {
	pingCmd.Flags().BoolVar(&pingAll, "all", false, "ping every configured service")
}

type pingResult struct {
	name string
	info *moodle.SiteInfo
	err  error
}

func runPing(cmd *cobra.Command, args []string) error {
	if !pingAll {
		c, err := connect()
		if err != nil {
			return err
		}
		info, _, err := c.SiteInfo(cmd.Context())
		if err != nil {
			return err
		}
		printSite(cmd, pingResult{name: c.URL(), info: info})
		return nil
	}

	names := cfg.ServiceNames()
	if len(names) == 0 {
		return errors.New("no services configured")
	}

	results := make([]pingResult, len(names))
	var g errgroup.Group
	g.SetLimit(maxConcurrentPings)

	for i, name := range names {
		g.Go(func() error {
			results[i].name = name

			svc, err := cfg.GetService(name)
			if err != nil {
				results[i].err = err
				return nil
			}
			c, err := newClient(svc)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].info, _, results[i].err = c.SiteInfo(cmd.Context())
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for _, r := range results {
		printSite(cmd, r)
		if r.err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d services failed", failed, len(results))
	}
	return nil
}

func printSite(cmd *cobra.Command, r pingResult) {
	out := cmd.OutOrStdout()
	if r.err != nil {
		fmt.Fprintf(out, "✗ %s: %v\n", r.name, r.err)
		return
	}

	release := r.info.Release
	if v, err := r.info.SemVer(); err == nil {
		release = v.String()
	}
	fmt.Fprintf(out, "✓ %s: %s (Moodle %s) as %s, %d functions\n",
		r.name, r.info.SiteName, release, r.info.UserName, len(r.info.Functions))
}
