package cmd

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/muddle/form"
)

// optArgs collects the repeated --opt flag of whichever command runs
var optArgs []string

func addOptFlag(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&optArgs, "opt", "o", nil, "optional field as key=value (repeatable)")
}

// splitPair splits key=value at the first '='
func splitPair(arg string) (string, string, error) {
	key, value, ok := strings.Cut(arg, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", arg)
	}
	return key, value, nil
}

// parseOpts turns key=value arguments into an options map. A repeated key
// keeps its last value.
func parseOpts(args []string) (map[string]any, error) {
	opts := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, err := splitPair(arg)
		if err != nil {
			return nil, err
		}
		opts[key] = value
	}
	return opts, nil
}

// decodeOpts fills out from the --opt flags. Unknown names fail before any
// request is made.
func decodeOpts(out any) error {
	opts, err := parseOpts(optArgs)
	if err != nil {
		return err
	}
	if len(opts) == 0 {
		return nil
	}
	return form.Decode(opts, out)
}

// parseParams turns key=value arguments into raw call parameters. Keys may
// already be bracketed, e.g. courseids[0]=2.
func parseParams(args []string) (url.Values, error) {
	params := url.Values{}
	for _, arg := range args {
		key, value, err := splitPair(arg)
		if err != nil {
			return nil, err
		}
		params.Add(key, value)
	}
	return params, nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
