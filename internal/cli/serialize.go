package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teamventure/itinmd/internal/itinerary"
	"github.com/teamventure/itinmd/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serialize [file]",
		Short: "Render a structured itinerary as canonical Markdown",
		Long:  "Read an itinerary as JSON or YAML ({days: [{day, date, items: [...]}]}) and print the canonical Markdown.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runSerialize,
	}

	cmd.Flags().Int("version", 1, "Version number for the header line")
	cmd.Flags().String("format", "json", "Input format: json or yaml")

	RootCmd.AddCommand(cmd)
}

func runSerialize(cmd *cobra.Command, args []string) {
	version, _ := cmd.Flags().GetInt("version")
	format, _ := cmd.Flags().GetString("format")

	input, err := readInput(cmd, args)
	if err != nil {
		exitErr("serialize", err)
	}

	it, err := decodeItinerary(input, format)
	if err != nil {
		exitErr("serialize", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), itinerary.Serialize(it, version))
}

func decodeItinerary(input, format string) (model.Itinerary, error) {
	var it model.Itinerary
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		if err := json.Unmarshal([]byte(input), &it); err != nil {
			return it, fmt.Errorf("parse json: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal([]byte(input), &it); err != nil {
			return it, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return it, fmt.Errorf("unknown input format %q (want json or yaml)", format)
	}
	return it, nil
}
