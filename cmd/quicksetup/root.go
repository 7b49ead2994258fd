package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-quicksetup/pkg/quicksetup"
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

var rootFlags struct {
	file string
}

var rootCmd = &cobra.Command{
	Use:   "quicksetup",
	Short: "Render and run quick setup documents",
	Long: `Render quick setup stages to HTML, walk a document interactively in the
terminal, or list the form specs a document embeds.

Documents are YAML (.yaml, .yml) or JSON (.json).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlags.file, "file", "f", "", "Quick setup document (required)")
	_ = rootCmd.MarkPersistentFlagRequired("file")

	rootCmd.AddCommand(renderCmd, runCmd, extractCmd)
}

func loadDocument() (quicksetup.Document, error) {
	return quicksetup.LoadFile(rootFlags.file)
}

// loadStageData reads a JSON array of stage data objects, one per stage.
func loadStageData(path string) ([]widget.StageData, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stage data: %w", err)
	}
	var data []widget.StageData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode stage data: %w", err)
	}
	return data, nil
}
