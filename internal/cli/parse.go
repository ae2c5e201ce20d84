package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teamventure/itinmd/internal/itinerary"
	"github.com/teamventure/itinmd/internal/model"
)

func init() {
	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse itinerary Markdown into JSON",
		Long:  "Parse itinerary Markdown and print the best-effort itinerary together with every line-level error.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runParse,
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate itinerary Markdown",
		Long:  "Validate itinerary Markdown. Prints the verdict as JSON and exits with status 1 when the document is invalid.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runValidate,
	}
	validateCmd.Flags().Bool("sanitize", false, "Filter the text through sanitize before validating")

	RootCmd.AddCommand(parseCmd, validateCmd)
}

type parseOutput struct {
	Itinerary model.Itinerary `json:"itinerary"`
	Errors    []string        `json:"errors"`
}

func runParse(cmd *cobra.Command, args []string) {
	input, err := readInput(cmd, args)
	if err != nil {
		exitErr("parse", err)
	}

	res := itinerary.Parse(input)
	it := res.Itinerary
	if it.Days == nil {
		it.Days = []model.Day{}
	}
	logger.Debug("parsed", zap.Int("days", len(it.Days)), zap.Int("issues", len(res.Issues)))
	printJSON(cmd, parseOutput{Itinerary: it, Errors: res.Errors()})
}

func runValidate(cmd *cobra.Command, args []string) {
	sanitize, _ := cmd.Flags().GetBool("sanitize")

	input, err := readInput(cmd, args)
	if err != nil {
		exitErr("validate", err)
	}
	if sanitize {
		input = itinerary.SanitizeLines(input)
	}

	res := itinerary.Validate(input)
	if res.Itinerary.Days == nil {
		res.Itinerary.Days = []model.Day{}
	}
	printJSON(cmd, res)

	if !res.Valid {
		logger.Debug("invalid itinerary", zap.Int("errors", len(res.Errors)))
		_ = logger.Sync()
		osExit(1)
	}
}
