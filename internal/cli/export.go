package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teamventure/itinmd/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export plan history as JSON",
		Long:  "Export every active plan version as a JSON array. Filter by plan with -p.",
		Run:   runExport,
	}

	cmd.Flags().StringP("plan", "p", "", "Filter by plan id")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	planID, _ := cmd.Flags().GetString("plan")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	plans, err := s.ExportAll(cmd.Context(), planID)
	if err != nil {
		exitErr("export", err)
	}
	if plans == nil {
		plans = []model.Plan{}
	}
	logger.Debug("exported", zap.Int("versions", len(plans)))

	printJSON(cmd, plans)
}
