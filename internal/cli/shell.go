package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/photobatch/internal/engine"
	"github.com/danieljhkim/photobatch/internal/planner"
)

var shellOpts batchOptions

var promptColor = color.New(color.FgMagenta, color.Bold)

var shellCmd = &cobra.Command{
	Use:   "shell [image]...",
	Short: "Start an interactive session with selection, export and undo",
	Long: `Start an interactive session.

The session keeps a selection of images, a base name, a format and an export
root between commands. Exports made in the session can be undone until the
session ends; history is not saved. Type 'help' inside the shell for the
list of commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		sh, err := newShell(eng, cmd.InOrStdin(), &shellOpts)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			if err := sh.exec(context.Background(), append([]string{"add"}, args...)); err != nil {
				PrintError(err.Error())
			}
		}
		return sh.run(cmd.Context())
	},
}

func init() {
	shellCmd.Flags().StringVarP(&shellOpts.name, "name", "n", "", "Initial base name")
	shellCmd.Flags().StringVarP(&shellOpts.format, "format", "f", string(planner.FormatParenthetical),
		"Initial numbering format (parenthetical, underscore, dash, space)")
	shellCmd.Flags().StringVarP(&shellOpts.dest, "dest", "d", "", "Initial export root directory")
}

// errQuit ends the read loop.
var errQuit = errors.New("quit")

// shell is a line-oriented session over one engine.
type shell struct {
	eng      *engine.Engine
	in       *bufio.Reader
	baseName string
	format   planner.Format
}

func newShell(eng *engine.Engine, in io.Reader, opts *batchOptions) (*shell, error) {
	format, err := planner.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	if opts.dest != "" {
		if err := eng.SetExportRoot(opts.dest); err != nil {
			return nil, err
		}
	}
	return &shell{
		eng:      eng,
		in:       bufio.NewReader(in),
		baseName: strings.TrimSpace(opts.name),
		format:   format,
	}, nil
}

// run reads and executes commands until quit or end of input.
func (s *shell) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	PrintInfo("photobatch shell. Type 'help' for commands, 'quit' to leave.")

	for {
		_, _ = promptColor.Fprint(stdout, "photobatch> ")
		line, readErr := s.in.ReadString('\n')

		if args, err := splitArgs(line); err != nil {
			PrintError(err.Error())
		} else if len(args) > 0 {
			if err := s.exec(ctx, args); errors.Is(err, errQuit) {
				return nil
			} else if err != nil {
				PrintError(err.Error())
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				_, _ = fmt.Fprintln(stdout)
				return nil
			}
			return readErr
		}
	}
}

// exec runs a single command.
func (s *shell) exec(ctx context.Context, args []string) error {
	name, rest := strings.ToLower(args[0]), args[1:]

	switch name {
	case "add":
		result, err := s.eng.Add(rest)
		if err != nil {
			return err
		}
		s.printSelected(len(result.Files), result.Ignored)

	case "remove", "rm":
		result, err := s.eng.Remove(rest)
		if err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("%s selected", PrintCount(len(result.Files), "image", "images")))

	case "clear":
		s.eng.Clear()
		PrintSuccess("Selection cleared")

	case "list", "ls":
		printSelection(s.eng.Selection())

	case "name":
		if len(rest) == 0 {
			PrintLabelValue("Name", s.baseName)
			return nil
		}
		s.baseName = strings.TrimSpace(strings.Join(rest, " "))
		PrintSuccess(fmt.Sprintf("Base name set to %q", s.baseName))

	case "format":
		if len(rest) == 0 {
			s.printFormats()
			return nil
		}
		format, err := planner.ParseFormat(rest[0])
		if err != nil {
			return err
		}
		s.format = format
		PrintSuccess(fmt.Sprintf("Format set to %s (%s)", format, format.Example()))

	case "dest":
		if len(rest) == 0 {
			PrintLabelValue("Export root", s.eng.ExportRoot())
			return nil
		}
		if err := s.eng.SetExportRoot(rest[0]); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("Export root set to %s", s.eng.ExportRoot()))

	case "reset-dest":
		s.eng.ResetExportRoot()
		PrintSuccess(fmt.Sprintf("Export root reset to %s", s.eng.ExportRoot()))

	case "preview":
		return s.preview()

	case "export":
		return s.export(ctx, rest)

	case "undo":
		result, err := s.eng.Undo(ctx)
		if err != nil {
			return err
		}
		printUndoResult(result)

	case "history":
		printHistory(s.eng.History())

	case "help", "?":
		printShellHelp()

	case "quit", "exit", "q":
		return errQuit

	default:
		return fmt.Errorf("unknown command %q (type 'help' for commands)", args[0])
	}
	return nil
}

func (s *shell) preview() error {
	if err := s.requireName(); err != nil {
		return err
	}
	result, err := s.eng.Preview(&engine.PreviewRequest{BaseName: s.baseName, Format: s.format})
	if err != nil {
		return err
	}

	PrintSection("Rename Plan")
	printPlan(result.Plan)
	if !result.Clear() {
		printCollisions(result.Collisions)
	}
	return nil
}

func (s *shell) export(ctx context.Context, flags []string) error {
	deleteOriginals := false
	for _, f := range flags {
		switch f {
		case "--delete-originals", "-D":
			deleteOriginals = true
		default:
			return fmt.Errorf("unknown export option %q", f)
		}
	}
	if err := s.requireName(); err != nil {
		return err
	}

	if deleteOriginals && !s.confirm("Delete the original files after copying? This export cannot be undone.") {
		PrintInfo("Export cancelled.")
		return nil
	}

	result, err := s.eng.Export(ctx, &engine.ExportRequest{
		BaseName:        s.baseName,
		Format:          s.format,
		DeleteOriginals: deleteOriginals,
	})
	if err != nil {
		var collisionErr *planner.CollisionError
		if errors.As(err, &collisionErr) {
			printCollisions(collisionErr.Collisions)
		}
		printPartialExport(result)
		return err
	}

	printExportResult(result)
	PrintInfo("Selection cleared for the next batch.")
	return nil
}

func (s *shell) requireName() error {
	if s.baseName == "" {
		return fmt.Errorf("%w: set one with 'name <base name>'", planner.ErrInvalidBaseName)
	}
	return nil
}

// confirm prompts for a yes/no answer on the shell's input.
func (s *shell) confirm(question string) bool {
	_, _ = warningColor.Fprintf(stdout, "%s [y/N]: ", question)
	response, err := s.in.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func (s *shell) printSelected(files, ignored int) {
	PrintSuccess(fmt.Sprintf("%s selected", PrintCount(files, "image", "images")))
	if ignored > 0 {
		PrintWarning(fmt.Sprintf("Ignored %s that are not supported images or already selected",
			PrintCount(ignored, "path", "paths")))
	}
}

func (s *shell) printFormats() {
	for _, f := range planner.Formats() {
		marker := " "
		if f == s.format {
			marker = "*"
		}
		PrintInfo(fmt.Sprintf("  %s %-13s %s", marker, f, f.Example()))
	}
}

func printShellHelp() {
	PrintSection("Commands")
	rows := [][]string{
		{"add <image>...", "Add images to the selection"},
		{"remove <image>...", "Remove images from the selection"},
		{"clear", "Clear the selection"},
		{"list", "Show the selection in export order"},
		{"name [base]", "Show or set the base name"},
		{"format [style]", "Show or set the numbering format"},
		{"dest [dir]", "Show or set the export root"},
		{"reset-dest", "Restore the default export root"},
		{"preview", "Show the rename plan and collisions"},
		{"export [-D]", "Export the selection; -D deletes the originals"},
		{"undo", "Undo the most recent export"},
		{"history", "List exports made in this session"},
		{"quit", "Leave the shell"},
	}
	PrintTable([]string{"Command", "Description"}, rows)
}

// splitArgs splits a command line on whitespace. Single or double quotes
// group words so paths with spaces can be given.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inWord  bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}
