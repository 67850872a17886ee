package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/photobatch/internal/engine"
	"github.com/danieljhkim/photobatch/internal/planner"
)

var previewOpts batchOptions

var previewCmd = &cobra.Command{
	Use:   "preview <image>...",
	Short: "Show the rename plan for a batch without writing anything",
	Long: `Show how a batch of images would be named and where it would be written.

Files that are not supported images are ignored. The destination folder is
checked for existing files with the same names; nothing is created.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		format, err := previewOpts.prepare(eng, args)
		if err != nil {
			return err
		}

		result, err := eng.Preview(&engine.PreviewRequest{
			BaseName: previewOpts.name,
			Format:   format,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := outputJSON(result); err != nil {
				return err
			}
		} else {
			PrintSection("Rename Plan")
			printPlan(result.Plan)
		}

		if !result.Clear() {
			if !jsonOutput {
				printCollisions(result.Collisions)
			}
			return &planner.CollisionError{
				Destination: result.Plan.Destination,
				Collisions:  result.Collisions,
			}
		}
		return nil
	},
}

func init() {
	addBatchFlags(previewCmd, &previewOpts)
}

// addBatchFlags registers the naming flags shared by preview and export.
func addBatchFlags(cmd *cobra.Command, opts *batchOptions) {
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Base name for the exported files and folder (required)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(planner.FormatParenthetical),
		"Numbering format (parenthetical, underscore, dash, space)")
	cmd.Flags().StringVarP(&opts.dest, "dest", "d", "", "Export root directory (default: exports next to the binary)")
	_ = cmd.MarkFlagRequired("name")
}
