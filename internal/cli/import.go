package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamventure/itinmd/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import plan history from JSON",
		Long:  "Import plan versions from JSON (file or stdin). Expects the format produced by export; versions are re-committed in order.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := readInput(cmd, args)
	if err != nil {
		exitErr("import", err)
	}

	var plans []model.Plan
	if err := json.Unmarshal([]byte(data), &plans); err != nil {
		exitErr("parse json", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), plans)
	if err != nil {
		exitErr(fmt.Sprintf("import (after %d)", imported), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", imported)
}
