package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teamventure/itinmd/internal/htmlimport"
	"github.com/teamventure/itinmd/internal/itinerary"
)

func init() {
	cmd := &cobra.Command{
		Use:   "sanitize [file]",
		Short: "Keep only itinerary lines from pasted text",
		Long: `Filter pasted text down to lines that look like itinerary Markdown.

With --html the input is an HTML page; its main content is converted to Markdown first.
With --draft the lighter editor-draft cleanup runs instead: version lines, dated headings
and placeholder rows are fixed up and everything else is kept.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runSanitize,
	}

	cmd.Flags().Bool("html", false, "Input is HTML")
	cmd.Flags().Bool("draft", false, "Clean up an editor draft instead of filtering")

	RootCmd.AddCommand(cmd)
}

func runSanitize(cmd *cobra.Command, args []string) {
	html, _ := cmd.Flags().GetBool("html")
	draft, _ := cmd.Flags().GetBool("draft")

	input, err := readInput(cmd, args)
	if err != nil {
		exitErr("sanitize", err)
	}

	if html {
		input, err = htmlimport.ToMarkdown(input)
		if err != nil {
			exitErr("sanitize", err)
		}
	}

	var out string
	if draft {
		out = itinerary.SanitizeDraft(input)
	} else {
		out = itinerary.SanitizeLines(input)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
}
