package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamventure/itinmd/internal/model"
)

func init() {
	draftCmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage uncommitted editor drafts",
	}

	saveCmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Save a draft (not validated)",
		Args:  cobra.MaximumNArgs(1),
		Run:   runDraftSave,
	}
	saveCmd.Flags().Int("base-version", 0, "Version the edit started from")

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show a draft",
		Run:   runDraftGet,
	}
	getCmd.Flags().Bool("markdown", false, "Print only the draft text")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Discard a draft",
		Run:   runDraftClear,
	}

	for _, c := range []*cobra.Command{saveCmd, getCmd, clearCmd} {
		c.Flags().StringP("plan", "p", "", "Plan id (required)")
		c.MarkFlagRequired("plan")
		draftCmd.AddCommand(c)
	}

	RootCmd.AddCommand(draftCmd)
}

func runDraftSave(cmd *cobra.Command, args []string) {
	planID, _ := cmd.Flags().GetString("plan")
	base, _ := cmd.Flags().GetInt("base-version")

	content, err := readInput(cmd, args)
	if err != nil {
		exitErr("draft save", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	d, err := s.SaveDraft(cmd.Context(), model.Draft{PlanID: planID, Markdown: content, BaseVersion: base})
	if err != nil {
		exitErr("draft save", err)
	}
	printJSON(cmd, d)
}

func runDraftGet(cmd *cobra.Command, args []string) {
	planID, _ := cmd.Flags().GetString("plan")
	markdown, _ := cmd.Flags().GetBool("markdown")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	d, err := s.GetDraft(cmd.Context(), planID)
	if err != nil {
		exitErr("draft get", err)
	}
	if markdown {
		fmt.Fprint(cmd.OutOrStdout(), d.Markdown)
		return
	}
	printJSON(cmd, d)
}

func runDraftClear(cmd *cobra.Command, args []string) {
	planID, _ := cmd.Flags().GetString("plan")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.ClearDraft(cmd.Context(), planID); err != nil {
		exitErr("draft clear", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"plan_id":%q}`+"\n", planID)
}
