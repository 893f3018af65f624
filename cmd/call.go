package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var callPost bool

// callCmd represents the call command
var callCmd = &cobra.Command{
	Use:   "call <wsfunction> [key=value...]",
	Short: "Call any web-service function with raw parameters",
	Long: `Call a web-service function by name. Parameters are given as key=value and
sent as they are, so structured arguments use Moodle's bracketed keys:

  muddle call core_course_get_courses 'options[ids][0]=2'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCall,
}

func init() {
	callCmd.Flags().BoolVar(&callPost, "post", false, "send the parameters as a POST form body")
}

func runCall(cmd *cobra.Command, args []string) error {
	params, err := parseParams(args[1:])
	if err != nil {
		return err
	}

	c, err := connect()
	if err != nil {
		return err
	}

	method := http.MethodGet
	if callPost {
		method = http.MethodPost
	}

	var out any
	if _, err := c.Call(cmd.Context(), method, args[0], params, &out); err != nil {
		return err
	}
	return printJSON(cmd, out)
}
