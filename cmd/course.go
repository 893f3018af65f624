package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/muddle/course"
)

var (
	duplicateVisible bool
	deleteContent    bool
)

// courseCmd groups the course commands
var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Create, find, copy and delete courses",
}

var courseCreateCmd = &cobra.Command{
	Use:   "create <fullname> <shortname> <categoryid>",
	Short: "Create a course",
	Long: `Create a course. Optional fields are given with --opt, e.g.

  muddle course create "Mathematics" MATH101 3 -o visible=0 -o startdate=2024-09-01`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		categoryID, err := parseID(args[2])
		if err != nil {
			return err
		}
		var opts course.CreateOptions
		if err := decodeOpts(&opts); err != nil {
			return err
		}

		api, err := courseAPI()
		if err != nil {
			return err
		}
		created, _, err := api.Create(cmd.Context(), args[0], args[1], categoryID, opts)
		if err != nil {
			return err
		}
		logger.Info().Int("id", created.ID).Str("shortname", created.ShortName).Msg("Created course")
		return printJSON(cmd, created)
	},
}

var courseGetCmd = &cobra.Command{
	Use:   "get [id...]",
	Short: "Get courses by id, or every course",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		api, err := courseAPI()
		if err != nil {
			return err
		}
		courses, _, err := api.Get(cmd.Context(), ids...)
		if err != nil {
			return err
		}
		return printJSON(cmd, courses)
	},
}

var courseGetByFieldCmd = &cobra.Command{
	Use:   "get-by-field <field> [value]",
	Short: "Get courses by id, ids, shortname, idnumber or category",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value string
		if len(args) == 2 {
			value = args[1]
		}
		api, err := courseAPI()
		if err != nil {
			return err
		}
		result, _, err := api.GetByField(cmd.Context(), args[0], value)
		if err != nil {
			return err
		}
		for _, w := range result.Warnings {
			logger.Warn().Str("code", w.WarningCode).Msg(w.Message)
		}
		return printJSON(cmd, result.Courses)
	},
}

var courseDeleteCmd = &cobra.Command{
	Use:   "delete <id...>",
	Short: "Delete courses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		api, err := courseAPI()
		if err != nil {
			return err
		}
		resp, err := api.Delete(cmd.Context(), ids...)
		if err != nil {
			return err
		}
		return printResponse(cmd, resp)
	},
}

var courseContentsCmd = &cobra.Command{
	Use:   "contents <courseid>",
	Short: "List the sections and modules of a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		api, err := courseAPI()
		if err != nil {
			return err
		}
		sections, _, err := api.Contents(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd, sections)
	},
}

var courseDuplicateCmd = &cobra.Command{
	Use:   "duplicate <courseid> <fullname> <shortname> <categoryid>",
	Short: "Copy a course into a new course",
	Long: `Copy a course into a new course. Backup settings are given with --opt,
e.g. -o users=0 -o activities=1.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, err := parseID(args[0])
		if err != nil {
			return err
		}
		categoryID, err := parseID(args[3])
		if err != nil {
			return err
		}
		var opts course.DuplicateOptions
		if err := decodeOpts(&opts); err != nil {
			return err
		}

		api, err := courseAPI()
		if err != nil {
			return err
		}
		created, _, err := api.Duplicate(cmd.Context(), courseID, args[1], args[2], categoryID, duplicateVisible, opts)
		if err != nil {
			return err
		}
		logger.Info().Int("from", courseID).Int("id", created.ID).Msg("Duplicated course")
		return printJSON(cmd, created)
	},
}

var courseImportCmd = &cobra.Command{
	Use:   "import <from> <to>",
	Short: "Import the activities of one course into another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		api, err := courseAPI()
		if err != nil {
			return err
		}
		resp, err := api.Import(cmd.Context(), ids[0], ids[1], deleteContent)
		if err != nil {
			return err
		}
		logger.Info().Int("from", ids[0]).Int("to", ids[1]).Msg("Imported course")
		return printResponse(cmd, resp)
	},
}

func init() {
	addOptFlag(courseCreateCmd)
	addOptFlag(courseDuplicateCmd)
	courseDuplicateCmd.Flags().BoolVar(&duplicateVisible, "visible", true, "make the new course visible")
	courseImportCmd.Flags().BoolVar(&deleteContent, "delete-content", false, "empty the target course first")

	courseCmd.AddCommand(
		courseCreateCmd,
		courseGetCmd,
		courseGetByFieldCmd,
		courseDeleteCmd,
		courseContentsCmd,
		courseDuplicateCmd,
		courseImportCmd,
	)
}

func courseAPI() (*course.API, error) {
	c, err := connect()
	if err != nil {
		return nil, err
	}
	return course.New(c), nil
}
