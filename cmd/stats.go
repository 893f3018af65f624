package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/muddle/stats"
)

// statsCmd groups the activity statistics commands
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Course activity statistics from the local_presentation plugin",
}

// newStatsCmd creates the command for one statistics period
func newStatsCmd(period stats.Period) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(period) + " <course>",
		Short: "Show " + string(period) + " activity of a course",
		Long: `Show activity counts of a course. The reported range is bounded with
-o starttime=2024-01-01 and -o endtime=2024-06-30.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts stats.ActivityOptions
			if err := decodeOpts(&opts); err != nil {
				return err
			}
			c, err := connect()
			if err != nil {
				return err
			}
			activity, _, err := stats.New(c).Activity(cmd.Context(), period, args[0], opts)
			if err != nil {
				return err
			}
			return printJSON(cmd, activity)
		},
	}
	addOptFlag(cmd)
	return cmd
}

func init() {
	statsCmd.AddCommand(
		newStatsCmd(stats.Monthly),
		newStatsCmd(stats.Weekly),
		newStatsCmd(stats.Daily),
	)
}
