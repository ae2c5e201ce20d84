package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teamventure/itinmd/internal/itinerary"
	"github.com/teamventure/itinmd/internal/render"
	"github.com/teamventure/itinmd/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render itinerary Markdown as markdown, json or pdf",
		Long:  "Validate itinerary Markdown and render it. PDF output needs a TrueType font (render.pdf_font_path) for CJK text.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runRender,
	}

	cmd.Flags().String("format", "markdown", "Output format: markdown, json or pdf")
	cmd.Flags().Int("version", 1, "Version number")
	cmd.Flags().String("title", "", "Document title (json and pdf)")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runRender(cmd *cobra.Command, args []string) {
	format, _ := cmd.Flags().GetString("format")
	version, _ := cmd.Flags().GetInt("version")
	title, _ := cmd.Flags().GetString("title")
	output, _ := cmd.Flags().GetString("output")

	input, err := readInput(cmd, args)
	if err != nil {
		exitErr("render", err)
	}

	check := itinerary.Validate(input)
	if !check.Valid {
		exitErr("render", &store.ValidationError{Errors: check.Errors})
	}

	r, err := render.New(format, render.Options{PDFFontPath: cfg.Render.PDFFontPath})
	if err != nil {
		exitErr("render", err)
	}
	data, err := r.Render(render.Document{Itinerary: check.Itinerary, Version: version, Title: title})
	if err != nil {
		exitErr("render", err)
	}

	if output == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			exitErr("render", err)
		}
		return
	}

	if filepath.Ext(output) == "" {
		output += r.Extension()
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		exitErr("render", err)
	}
	logger.Debug("rendered", zap.String("format", format), zap.String("path", output), zap.Int("bytes", len(data)))
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"path":%q,"bytes":%d}`+"\n", output, len(data))
}
