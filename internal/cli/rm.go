package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamventure/itinmd/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a plan",
		Long:  "Delete the latest version of a plan, or every version with --all-versions. Soft delete unless --hard.",
		Run:   runRm,
	}

	cmd.Flags().StringP("plan", "p", "", "Plan id (required)")
	cmd.Flags().Bool("all-versions", false, "Delete all versions")
	cmd.Flags().Bool("hard", false, "Permanent delete (irreversible)")

	cmd.MarkFlagRequired("plan")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	planID, _ := cmd.Flags().GetString("plan")
	allVersions, _ := cmd.Flags().GetBool("all-versions")
	hard, _ := cmd.Flags().GetBool("hard")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	err = s.Rm(cmd.Context(), store.RmParams{
		PlanID:      planID,
		AllVersions: allVersions,
		Hard:        hard,
	})
	if err != nil {
		exitErr("rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"plan_id":%q}`+"\n", planID)
}
