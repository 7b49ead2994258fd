package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-quicksetup/pkg/quicksetup"
	"github.com/goliatone/go-quicksetup/pkg/renderers/tui"
)

var runFlags struct {
	dataPath string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Walk a document interactively in the terminal",
	Long: `Prompt for every stage of a document in order. Completed stages are
recapped before the active one. On save the collected stage data is printed
as JSON.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.dataPath, "data", "", "JSON file with initial stage data")
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	initial, err := loadStageData(runFlags.dataPath)
	if err != nil {
		return err
	}
	wizard, err := quicksetup.NewWizard(doc,
		quicksetup.WithInitialData(initial),
		quicksetup.WithValidator(quicksetup.SchemaValidator(doc)),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	surface := tui.New(tui.WithOutput(out))
	if doc.Title != "" {
		fmt.Fprintln(out, doc.Title)
	}

	for !wizard.Saved() {
		for idx := 0; idx < wizard.Current(); idx++ {
			recap, err := wizard.Recap(idx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "[done] %s\n", doc.Stages[idx].Title)
			if err := surface.Run(ctx, recap); err != nil {
				return err
			}
		}

		current := wizard.Stage()
		fmt.Fprintf(out, "\n== %d/%d %s\n", wizard.Current()+1, len(doc.Stages), current.Title)
		if current.SubTitle != "" {
			fmt.Fprintln(out, current.SubTitle)
		}
		if err := surface.Run(ctx, wizard.Content()); err != nil {
			return err
		}
		if _, err := surface.Choose(ctx, wizard.Buttons(ctx)...); err != nil {
			return err
		}
		if err := wizard.Err(); err != nil {
			if !errors.Is(err, quicksetup.ErrValidation) {
				return err
			}
			errs := wizard.Errors()
			keys := make([]string, 0, len(errs))
			for key := range errs {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				for _, message := range errs[key] {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", key, message)
				}
			}
		}
	}

	encoded, err := json.MarshalIndent(wizard.Data(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode stage data: %w", err)
	}
	fmt.Fprintln(out, string(encoded))
	return nil
}
