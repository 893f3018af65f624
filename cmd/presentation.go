package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/muddle/presentation"
)

// presentationCmd groups the local_presentation user commands
var presentationCmd = &cobra.Command{
	Use:   "presentation",
	Short: "User queries from the local_presentation plugin",
}

var roleUsersCmd = &cobra.Command{
	Use:   "role-users <course> <role>",
	Short: "List the users holding a role in a course",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		found, _, err := presentation.New(c).CourseRoleUsers(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd, found)
	},
}

func init() {
	presentationCmd.AddCommand(roleUsersCmd)
}
