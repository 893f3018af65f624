package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/muddle/users"
)

var keepUsernames bool

// usersCmd groups the user commands
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Look up users",
}

var usersGetByFieldCmd = &cobra.Command{
	Use:   "get-by-field <field> <value...>",
	Short: "Get users by id, idnumber, username or email",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		found, _, err := users.New(c).GetByField(cmd.Context(), args[0], args[1:], users.LookupOptions{
			KeepUsernames: keepUsernames,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd, found)
	},
}

func init() {
	usersGetByFieldCmd.Flags().BoolVar(&keepUsernames, "keep-usernames", false, "send usernames as given instead of normalizing them")
	usersCmd.AddCommand(usersGetByFieldCmd)
}
