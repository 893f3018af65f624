package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/muddle/filter"
	"github.com/s0up4200/muddle/moodle"
)

// printJSON writes v as indented JSON, keeping only the records that match
// --filter when one is given
func printJSON(cmd *cobra.Command, v any) error {
	if filterExpr != "" {
		records, err := filter.Apply(cmd.Context(), filterExpr, v)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		logger.Debug().Str("filter", filterExpr).Int("matched", len(records)).Msg("Filtered result")
		v = records
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// printResponse writes the body of a call whose result is not decoded, such
// as the warnings of a delete. Void functions print nothing.
func printResponse(cmd *cobra.Command, resp *moodle.Response) error {
	if resp == nil {
		return nil
	}
	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 || string(body) == "null" {
		return nil
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("%w: %s: %v", moodle.ErrInvalidResponse, resp.Function, err)
	}
	return printJSON(cmd, v)
}
