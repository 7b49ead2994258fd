package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-quicksetup/pkg/widget"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "List the form spec ids embedded in each stage",
	Args:  cobra.NoArgs,
	RunE:  runExtract,
}

func runExtract(cmd *cobra.Command, _ []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for idx, spec := range doc.Stages {
		ids := widget.FormSpecIDs(spec.Components)
		fmt.Fprintf(out, "%d\t%s\t%s\n", idx, spec.Title, strings.Join(ids, ","))
	}
	return nil
}
