package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/profitalyze/profit-predict/pipeline"
)

// schemaCmd prints the features a record must carry.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the feature schema the artifact was fitted on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchema(cmd.OutOrStdout(), modelPath)
	},
}

// runSchema writes one "name<TAB>type" line per fitted feature, in fitted order.
func runSchema(w io.Writer, artifactPath string) error {
	p, err := pipeline.Load(artifactPath)
	if err != nil {
		return err
	}
	for _, f := range p.Schema() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", f.Name, f.Type); err != nil {
			return err
		}
	}
	return nil
}
