package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamventure/itinmd/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Retrieve a plan",
		Run:   runGet,
	}

	cmd.Flags().StringP("plan", "p", "", "Plan id (required)")
	cmd.Flags().Bool("history", false, "Return all versions (newest first)")
	cmd.Flags().Int("version", 0, "Specific version number")
	cmd.Flags().Bool("markdown", false, "Print only the Markdown of the plan")

	cmd.MarkFlagRequired("plan")

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	planID, _ := cmd.Flags().GetString("plan")
	history, _ := cmd.Flags().GetBool("history")
	version, _ := cmd.Flags().GetInt("version")
	markdown, _ := cmd.Flags().GetBool("markdown")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	plans, err := s.Get(cmd.Context(), store.GetParams{
		PlanID:  planID,
		History: history,
		Version: version,
	})
	if err != nil {
		exitErr("get", err)
	}

	if markdown {
		fmt.Fprint(cmd.OutOrStdout(), plans[0].Markdown)
		return
	}

	if history || len(plans) > 1 {
		printJSON(cmd, plans)
	} else {
		printJSON(cmd, plans[0])
	}
}
