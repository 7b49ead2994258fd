package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-quicksetup/pkg/buttons"
	"github.com/goliatone/go-quicksetup/pkg/quicksetup"
	"github.com/goliatone/go-quicksetup/pkg/renderers/html"
	"github.com/goliatone/go-quicksetup/pkg/stage"
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

var renderFlags struct {
	stage        int
	recap        bool
	dataPath     string
	output       string
	templatesDir string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one stage to HTML",
	Long: `Render the content of a stage, or its recap with --recap, as HTML.

Stage data can be supplied with --data as a JSON array holding one object per
stage, keyed by form spec id.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.IntVarP(&renderFlags.stage, "stage", "s", 0, "Stage index to render")
	f.BoolVar(&renderFlags.recap, "recap", false, "Render the stage recap instead of its content")
	f.StringVar(&renderFlags.dataPath, "data", "", "JSON file with stage data")
	f.StringVarP(&renderFlags.output, "output", "o", "", "Output file (stdout if empty)")
	f.StringVar(&renderFlags.templatesDir, "templates", "", "Directory holding a templates/ tree that replaces the embedded one")
}

func runRender(cmd *cobra.Command, _ []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	if renderFlags.stage < 0 || renderFlags.stage >= len(doc.Stages) {
		return fmt.Errorf("stage %d: %w", renderFlags.stage, quicksetup.ErrNoStage)
	}
	data, err := loadStageData(renderFlags.dataPath)
	if err != nil {
		return err
	}
	stageData := widget.StageData{}
	if renderFlags.stage < len(data) && data[renderFlags.stage] != nil {
		stageData = data[renderFlags.stage]
	}

	renderer, err := html.New(html.WithTemplatesDir(renderFlags.templatesDir))
	if err != nil {
		return err
	}

	spec := doc.Stages[renderFlags.stage]
	var node stage.Node
	if renderFlags.recap {
		items := spec.Recap
		if len(items) == 0 {
			items = quicksetup.RecapItems(spec.Components, stageData)
		}
		node = stage.RenderRecap(items)
	} else {
		node = stage.RenderContent(spec.Components, nil, stage.WithUserInput(stageData))
	}
	if stage.Nothing(node) {
		fmt.Fprintln(cmd.ErrOrStderr(), "nothing to render")
		return nil
	}

	out, err := renderer.RenderNode(cmd.Context(), node)
	if err != nil {
		return err
	}
	if !renderFlags.recap {
		definer := buttons.Define(nil, nil, nil)
		var specs []buttons.Spec
		if renderFlags.stage > 0 {
			specs = append(specs, definer.Prev(orDefault(spec.PrevLabel, quicksetup.DefaultPrevLabel)))
		}
		if renderFlags.stage == len(doc.Stages)-1 {
			specs = append(specs, definer.Save(orDefault(doc.SaveLabel, quicksetup.DefaultSaveLabel)))
		} else {
			specs = append(specs, definer.Next(orDefault(spec.NextLabel, quicksetup.DefaultNextLabel)))
		}
		controls, err := renderer.RenderButtons(cmd.Context(), specs...)
		if err != nil {
			return err
		}
		out = append(out, controls...)
	}

	if renderFlags.output != "" {
		if err := os.WriteFile(renderFlags.output, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stage written to %s\n", renderFlags.output)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(append(out, '\n'))
	return err
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
