package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"topoconf/internal/domain"
	"topoconf/internal/loader"
)

// newLayoutCmd creates the layout command for printing a topology's grid layout
func newLayoutCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "layout [topology.json|topology.yaml]",
		Short: "Print the visualization layout of a topology file",
		Long: `Print the visualization layout of a topology file.

The file is read with the same defaults as a save request and the UPF
coordinates are computed on the square grid served by
/api/simulation/static_topology.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			record, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("loaded topology", "path", args[0], "upfs", record.UPFCount)

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := writeLayout(w, domain.GenerateLayout(record)); err != nil {
				return err
			}
			if output != "" {
				logger.Info("wrote layout", "path", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func writeLayout(w io.Writer, layout *domain.VisualizationLayout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(layout); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}
