package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/muddle/category"
)

var (
	deleteRecursive bool
	deleteNewParent int
)

// categoryCmd groups the course category commands
var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage course categories",
}

var categoryDetailsCmd = &cobra.Command{
	Use:   "details <id>",
	Short: "Show one category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		api, err := categoryAPI()
		if err != nil {
			return err
		}
		cat, _, err := api.Details(cmd.Context(), id)
		if err != nil {
			return err
		}
		if cat == nil {
			logger.Warn().Int("id", id).Msg("Category not found")
			return nil
		}
		return printJSON(cmd, cat)
	},
}

var categoryFindCmd = &cobra.Command{
	Use:   "find [key=value...]",
	Short: "Find categories matching every criterion, e.g. parent=0",
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria := make([]category.Criterion, 0, len(args))
		for _, arg := range args {
			key, value, err := splitPair(arg)
			if err != nil {
				return err
			}
			criteria = append(criteria, category.Criterion{Key: key, Value: value})
		}

		api, err := categoryAPI()
		if err != nil {
			return err
		}
		categories, _, err := api.Find(cmd.Context(), criteria...)
		if err != nil {
			return err
		}
		return printJSON(cmd, categories)
	},
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a category",
	Long: `Create a category. Optional fields are given with --opt, e.g.

  muddle category create Science -o parent=2 -o description="Natural sciences"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts category.CreateOptions
		if err := decodeOpts(&opts); err != nil {
			return err
		}
		api, err := categoryAPI()
		if err != nil {
			return err
		}
		created, _, err := api.Create(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		logger.Info().Int("id", created.ID).Str("name", created.Name).Msg("Created category")
		return printJSON(cmd, created)
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id...>",
	Short: "Delete categories",
	Long: `Delete categories. Their contents are moved to --new-parent, or deleted
with them when --recursive is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		opts := category.DeleteOptions{Recursive: deleteRecursive}
		if cmd.Flags().Changed("new-parent") {
			opts.NewParent = &deleteNewParent
		}

		api, err := categoryAPI()
		if err != nil {
			return err
		}
		resp, err := api.Delete(cmd.Context(), opts, ids...)
		if err != nil {
			return err
		}
		logger.Info().Ints("ids", ids).Msg("Deleted categories")
		return printResponse(cmd, resp)
	},
}

var categoryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the fields of a category given with --opt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var opts category.UpdateOptions
		if err := decodeOpts(&opts); err != nil {
			return err
		}
		api, err := categoryAPI()
		if err != nil {
			return err
		}
		resp, err := api.Update(cmd.Context(), id, opts)
		if err != nil {
			return err
		}
		return printResponse(cmd, resp)
	},
}

func init() {
	addOptFlag(categoryCreateCmd)
	addOptFlag(categoryUpdateCmd)
	categoryDeleteCmd.Flags().BoolVar(&deleteRecursive, "recursive", false, "delete the contents too")
	categoryDeleteCmd.Flags().IntVar(&deleteNewParent, "new-parent", 0, "category receiving the contents")

	categoryCmd.AddCommand(
		categoryDetailsCmd,
		categoryFindCmd,
		categoryCreateCmd,
		categoryDeleteCmd,
		categoryUpdateCmd,
	)
}

func categoryAPI() (*category.API, error) {
	c, err := connect()
	if err != nil {
		return nil, err
	}
	return category.New(c), nil
}
