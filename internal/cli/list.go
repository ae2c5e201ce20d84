package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamventure/itinmd/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plans",
		Run:   runList,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("ids-only", false, "Only output plan ids and versions")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	plans, err := s.List(cmd.Context(), store.ListParams{Limit: limit})
	if err != nil {
		exitErr("list", err)
	}

	if idsOnly {
		for _, p := range plans {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tv%d\n", p.PlanID, p.Version)
		}
		return
	}

	if len(plans) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "[]")
		return
	}
	printJSON(cmd, plans)
}
