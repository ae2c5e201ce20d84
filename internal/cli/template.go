package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teamventure/itinmd/internal/itinerary"
)

func init() {
	templateCmd := &cobra.Command{
		Use:   "template [file]",
		Short: "Build a valid placeholder itinerary from any text",
		Args:  cobra.MaximumNArgs(1),
		Run:   runTemplate,
	}
	templateCmd.Flags().Int("version", 0, "Version number for the header line (default from config)")

	enforceCmd := &cobra.Command{
		Use:   "enforce [file]",
		Short: "Pass a valid document through or replace it with a template",
		Long:  "Print the candidate when it validates; otherwise print a template built from --fallback (or the candidate itself).",
		Args:  cobra.MaximumNArgs(1),
		Run:   runEnforce,
	}
	enforceCmd.Flags().String("fallback", "", "File with the source text for the template")

	RootCmd.AddCommand(templateCmd, enforceCmd)
}

func templateOptions(cmd *cobra.Command) itinerary.TemplateOptions {
	opts := cfg.Template.Options()
	if cmd.Flags().Lookup("version") != nil && cmd.Flags().Changed("version") {
		opts.Version, _ = cmd.Flags().GetInt("version")
	}
	return opts
}

func runTemplate(cmd *cobra.Command, args []string) {
	input, err := readInput(cmd, args)
	if err != nil {
		exitErr("template", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), itinerary.Template(input, templateOptions(cmd)))
}

func runEnforce(cmd *cobra.Command, args []string) {
	fallbackPath, _ := cmd.Flags().GetString("fallback")

	candidate, err := readInput(cmd, args)
	if err != nil {
		exitErr("enforce", err)
	}

	var fallback string
	if fallbackPath != "" {
		b, err := os.ReadFile(fallbackPath)
		if err != nil {
			exitErr("enforce", err)
		}
		fallback = string(b)
	}

	res := itinerary.Enforce(candidate, fallback, templateOptions(cmd))
	if res.FallbackUsed {
		logger.Info("candidate rejected, using template", zap.Int("days", res.Check.Stats.Days))
	}
	printJSON(cmd, res)
}
