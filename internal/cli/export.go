package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/photobatch/internal/engine"
	"github.com/danieljhkim/photobatch/internal/planner"
)

var (
	exportOpts            batchOptions
	exportDeleteOriginals bool
	exportDryRun          bool
)

var exportCmd = &cobra.Command{
	Use:   "export <image>...",
	Short: "Copy a batch of images into a new folder under sequential names",
	Long: `Copy a batch of images into {export root}/{name}/ under sequential names.

Nothing is written if any target name already exists. With --delete-originals
each source is removed once its copy succeeded; such an export cannot be
undone. Undo is available inside 'photobatch shell' for the session.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		format, err := exportOpts.prepare(eng, args)
		if err != nil {
			return err
		}

		result, err := eng.Export(context.Background(), &engine.ExportRequest{
			BaseName:        exportOpts.name,
			Format:          format,
			DeleteOriginals: exportDeleteOriginals,
			DryRun:          exportDryRun,
		})
		if jsonOutput && result != nil {
			if jsonErr := outputJSON(result); jsonErr != nil {
				return jsonErr
			}
			return err
		}
		if err != nil {
			var collisionErr *planner.CollisionError
			if errors.As(err, &collisionErr) {
				printCollisions(collisionErr.Collisions)
			}
			printPartialExport(result)
			return err
		}

		if exportDryRun {
			PrintSection("Dry Run")
			printPlan(result.Plan)
			_, _ = fmt.Fprintln(stdout)
			PrintWarning("Run without --dry-run to export")
			return nil
		}

		printExportResult(result)
		return nil
	},
}

func init() {
	addBatchFlags(exportCmd, &exportOpts)
	exportCmd.Flags().BoolVar(&exportDeleteOriginals, "delete-originals", false, "Delete each source after it was copied (cannot be undone)")
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "Show what would be exported without writing")
}
