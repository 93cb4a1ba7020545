package main

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/goodtune/countup/internal/stopwatch"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format SECONDS",
	Short: "Render a number of seconds as HH:MM:SS",
	Example: heredoc.Doc(`
		$ countup format 35
		00:00:35
		$ countup format 3661
		01:01:01
	`),
	Args: cobra.ExactArgs(1),
	RunE: runFormat,
}

var parseCmd = &cobra.Command{
	Use:   "parse HH:MM:SS",
	Short: "Convert an HH:MM:SS duration back to seconds",
	Example: heredoc.Doc(`
		$ countup parse 01:01:01
		3661
	`),
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(parseCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	seconds, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || seconds < 0 {
		return fmt.Errorf("invalid seconds %q: must be a non-negative integer", args[0])
	}

	fmt.Fprintln(cmd.OutOrStdout(), stopwatch.FormatSeconds(seconds))
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	seconds, err := stopwatch.ParseSeconds(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), seconds)
	return nil
}
