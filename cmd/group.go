package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/muddle/group"
)

var returnGroups bool

// groupCmd groups the course group commands
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage course groups and their members",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <courseid> <name>",
	Short: "Create a group in a course",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, err := parseID(args[0])
		if err != nil {
			return err
		}
		var g group.Group
		if err := decodeOpts(&g); err != nil {
			return err
		}
		g.CourseID = courseID
		g.Name = args[1]

		api, err := groupAPI()
		if err != nil {
			return err
		}
		created, _, err := api.CreateGroups(cmd.Context(), []group.Group{g})
		if err != nil {
			return err
		}
		return printJSON(cmd, created)
	},
}

var groupGetCmd = &cobra.Command{
	Use:   "get <id...>",
	Short: "Get groups by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		api, err := groupAPI()
		if err != nil {
			return err
		}
		groups, _, err := api.GetGroups(cmd.Context(), ids...)
		if err != nil {
			return err
		}
		return printJSON(cmd, groups)
	},
}

var groupCourseCmd = &cobra.Command{
	Use:   "course <courseid>",
	Short: "List the groups of a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		api, err := groupAPI()
		if err != nil {
			return err
		}
		groups, _, err := api.CourseGroups(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd, groups)
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete <id...>",
	Short: "Delete groups",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		api, err := groupAPI()
		if err != nil {
			return err
		}
		resp, err := api.DeleteGroups(cmd.Context(), ids...)
		if err != nil {
			return err
		}
		return printResponse(cmd, resp)
	},
}

var groupMembersCmd = &cobra.Command{
	Use:   "members <groupid...>",
	Short: "List the members of groups",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		api, err := groupAPI()
		if err != nil {
			return err
		}
		members, _, err := api.Members(cmd.Context(), ids...)
		if err != nil {
			return err
		}
		return printJSON(cmd, members)
	},
}

var groupAddMembersCmd = &cobra.Command{
	Use:   "add-members <groupid> <userid...>",
	Short: "Add users to a group",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		members, err := parseMembers(args)
		if err != nil {
			return err
		}
		api, err := groupAPI()
		if err != nil {
			return err
		}
		resp, err := api.AddMembers(cmd.Context(), members)
		if err != nil {
			return err
		}
		return printResponse(cmd, resp)
	},
}

var groupRemoveMembersCmd = &cobra.Command{
	Use:   "remove-members <groupid> <userid...>",
	Short: "Remove users from a group",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		members, err := parseMembers(args)
		if err != nil {
			return err
		}
		api, err := groupAPI()
		if err != nil {
			return err
		}
		resp, err := api.DeleteMembers(cmd.Context(), members)
		if err != nil {
			return err
		}
		return printResponse(cmd, resp)
	},
}

// groupingCmd groups the grouping commands
var groupingCmd = &cobra.Command{
	Use:   "grouping",
	Short: "Manage groupings of course groups",
}

var groupingCreateCmd = &cobra.Command{
	Use:   "create <courseid> <name>",
	Short: "Create a grouping in a course",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, err := parseID(args[0])
		if err != nil {
			return err
		}
		var g group.NewGrouping
		if err := decodeOpts(&g); err != nil {
			return err
		}
		g.CourseID = courseID
		g.Name = args[1]

		api, err := groupAPI()
		if err != nil {
			return err
		}
		created, _, err := api.CreateGroupings(cmd.Context(), []group.NewGrouping{g})
		if err != nil {
			return err
		}
		return printJSON(cmd, created)
	},
}

var groupingUpdateCmd = &cobra.Command{
	Use:   "update <id> <name>",
	Short: "Rename a grouping and change the fields given with --opt",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var g group.GroupingUpdate
		if err := decodeOpts(&g); err != nil {
			return err
		}
		g.ID = id
		g.Name = args[1]

		api, err := groupAPI()
		if err != nil {
			return err
		}
		resp, err := api.UpdateGroupings(cmd.Context(), []group.GroupingUpdate{g})
		if err != nil {
			return err
		}
		return printResponse(cmd, resp)
	},
}

var groupingGetCmd = &cobra.Command{
	Use:   "get <id...>",
	Short: "Get groupings by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		api, err := groupAPI()
		if err != nil {
			return err
		}
		groupings, _, err := api.GetGroupings(cmd.Context(), returnGroups, ids...)
		if err != nil {
			return err
		}
		return printJSON(cmd, groupings)
	},
}

var groupingCourseCmd = &cobra.Command{
	Use:   "course <courseid>",
	Short: "List the groupings of a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		api, err := groupAPI()
		if err != nil {
			return err
		}
		groupings, _, err := api.CourseGroupings(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd, groupings)
	},
}

var groupingDeleteCmd = &cobra.Command{
	Use:   "delete <id...>",
	Short: "Delete groupings",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		api, err := groupAPI()
		if err != nil {
			return err
		}
		resp, err := api.DeleteGroupings(cmd.Context(), ids...)
		if err != nil {
			return err
		}
		return printResponse(cmd, resp)
	},
}

var groupingAssignCmd = &cobra.Command{
	Use:   "assign <groupingid> <groupid...>",
	Short: "Put groups into a grouping",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		assignments := make([]group.Assignment, 0, len(ids)-1)
		for _, groupID := range ids[1:] {
			assignments = append(assignments, group.Assignment{GroupingID: ids[0], GroupID: groupID})
		}

		api, err := groupAPI()
		if err != nil {
			return err
		}
		resp, err := api.AssignGrouping(cmd.Context(), assignments)
		if err != nil {
			return err
		}
		return printResponse(cmd, resp)
	},
}

func init() {
	addOptFlag(groupCreateCmd)
	addOptFlag(groupingCreateCmd)
	addOptFlag(groupingUpdateCmd)
	groupingGetCmd.Flags().BoolVar(&returnGroups, "groups", true, "include the groups of each grouping (--groups=false to leave them out)")

	groupCmd.AddCommand(
		groupCreateCmd,
		groupGetCmd,
		groupCourseCmd,
		groupDeleteCmd,
		groupMembersCmd,
		groupAddMembersCmd,
		groupRemoveMembersCmd,
	)
	groupingCmd.AddCommand(
		groupingCreateCmd,
		groupingUpdateCmd,
		groupingGetCmd,
		groupingCourseCmd,
		groupingDeleteCmd,
		groupingAssignCmd,
	)
}

// parseMembers reads a group id followed by user ids
func parseMembers(args []string) ([]group.Member, error) {
	ids, err := parseIDs(args)
	if err != nil {
		return nil, err
	}
	members := make([]group.Member, 0, len(ids)-1)
	for _, userID := range ids[1:] {
		members = append(members, group.Member{GroupID: ids[0], UserID: userID})
	}
	return members, nil
}

func groupAPI() (*group.API, error) {
	c, err := connect()
	if err != nil {
		return nil, err
	}
	return group.New(c), nil
}
