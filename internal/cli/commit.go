package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teamventure/itinmd/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "commit [file]",
		Short: "Commit a new version of a plan",
		Long: `Validate itinerary Markdown and store it as the next version of a plan.
Content can be a file argument or piped via stdin.

With --base-version the commit is rejected when the plan has moved on since that version.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runCommit,
	}

	cmd.Flags().StringP("plan", "p", "", "Plan id (required)")
	cmd.Flags().Int("base-version", 0, "Version the edit started from (0 skips the conflict check)")

	cmd.MarkFlagRequired("plan")

	RootCmd.AddCommand(cmd)
}

func runCommit(cmd *cobra.Command, args []string) {
	planID, _ := cmd.Flags().GetString("plan")
	base, _ := cmd.Flags().GetInt("base-version")

	content, err := readInput(cmd, args)
	if err != nil {
		exitErr("commit", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	plan, err := s.Commit(cmd.Context(), store.CommitParams{
		PlanID:      planID,
		Markdown:    content,
		BaseVersion: base,
	})
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			for _, e := range verr.Errors {
				fmt.Fprintln(os.Stderr, e)
			}
		}
		exitErr("commit", err)
	}

	printJSON(cmd, plan)
}
