package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/danieljhkim/photobatch/internal/config"
	"github.com/danieljhkim/photobatch/internal/planner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	verbose    bool

	// Colors for help output sections
	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// rootCmd is the root command for photobatch.
var rootCmd = &cobra.Command{
	Use:     "photobatch",
	Version: "dev",
	Short:   "Batch rename and export images with undo",
	Long: `photobatch copies a batch of images into a new folder under sequential names
such as "Trip (1).jpg", "Trip (2).png".

Every export is checked for name collisions before anything is written, and
exports that kept their originals can be undone for the rest of the session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion sets the version reported by --version and the version command.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// renderHelp writes the help page for cmd. The root page also lists the
// naming formats and the environment it reads.
func renderHelp(cmd *cobra.Command, args []string) {
	var b strings.Builder

	if cmd.Long != "" {
		b.WriteString(cmd.Long)
		b.WriteString("\n\n")
	}
	writeSection(&b, "Usage:", sectionTitleColor)
	fmt.Fprintf(&b, "  %s\n\n", cmd.UseLine())

	visible := func(c *cobra.Command, groupID string) bool {
		return c.GroupID == groupID && !c.Hidden
	}
	for _, group := range cmd.Groups() {
		writeCommandList(&b, group.Title, groupTitleColor, cmd, func(c *cobra.Command) bool {
			return visible(c, group.ID)
		})
	}
	writeCommandList(&b, "Additional Commands:", sectionTitleColor, cmd, func(c *cobra.Command) bool {
		return visible(c, "")
	})

	if !cmd.HasParent() {
		writeSection(&b, "Formats:", sectionTitleColor)
		for _, f := range planner.Formats() {
			fmt.Fprintf(&b, "  %-13s %s\n", f, f.Example())
		}
		b.WriteString("\n")

		writeSection(&b, "Environment:", sectionTitleColor)
		fmt.Fprintf(&b, "  %s  Directory exports are written under (default: exports/ next to the binary)\n\n", config.EnvExportRoot)
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailableInheritedFlags() {
		writeSection(&b, "Flags:", sectionTitleColor)
		b.WriteString(cmd.LocalFlags().FlagUsages())
		b.WriteString(cmd.InheritedFlags().FlagUsages())
		b.WriteString("\n")
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}
	fmt.Fprint(cmd.OutOrStdout(), b.String())
}

func writeSection(b *strings.Builder, title string, c *color.Color) {
	b.WriteString(c.Sprint(title))
	b.WriteString("\n")
}

// writeCommandList writes the subcommands of cmd accepted by keep under
// title. Nothing is written when none match.
func writeCommandList(b *strings.Builder, title string, c *color.Color, cmd *cobra.Command, keep func(*cobra.Command) bool) {
	var lines []string
	for _, sub := range cmd.Commands() {
		if keep(sub) {
			lines = append(lines, fmt.Sprintf("  %-11s %s\n", sub.Name(), sub.Short))
		}
	}
	if len(lines) == 0 {
		return
	}
	writeSection(b, title, c)
	for _, line := range lines {
		b.WriteString(line)
	}
	b.WriteString("\n")
}

// completionCommand builds the completion command with one subcommand per
// supported shell.
func completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "completion",
		Short:   "Generate the autocompletion script for the specified shell",
		GroupID: "cli-tooling",
		Long: `Generate the autocompletion script for photobatch for the specified shell.
See each sub-command's help for details on how to use the generated script.`,
	}

	shells := []struct {
		name string
		gen  func(w io.Writer) error
	}{
		{"bash", rootCmd.GenBashCompletion},
		{"zsh", rootCmd.GenZshCompletion},
		{"fish", func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) }},
		{"powershell", rootCmd.GenPowerShellCompletionWithDesc},
	}
	for _, sh := range shells {
		gen := sh.gen
		cmd.AddCommand(&cobra.Command{
			Use:                   sh.name,
			Short:                 "Generate the autocompletion script for " + sh.name,
			Args:                  cobra.NoArgs,
			DisableFlagsInUseLine: true,
			RunE: func(c *cobra.Command, args []string) error {
				return gen(c.OutOrStdout())
			},
		})
	}
	return cmd
}

func init() {
	rootCmd.SetHelpFunc(renderHelp)

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostic details to stderr")

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "export-workflow",
		Title: "Export Workflow:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "interactive-session",
		Title: "Interactive Session:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "cli-tooling",
		Title: "CLI & Tooling:",
	})

	// CLI & Tooling commands
	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the photobatch CLI version",
		Args:    cobra.NoArgs,
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	helpCmd := &cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: "cli-tooling",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _, err := cmd.Root().Find(args)
			if err != nil || target == nil {
				return fmt.Errorf("unknown help topic %q", strings.Join(args, " "))
			}
			return target.Help()
		},
	}
	rootCmd.SetHelpCommand(helpCmd)

	rootCmd.AddCommand(completionCommand())

	// Export Workflow commands
	previewCmd.GroupID = "export-workflow"
	exportCmd.GroupID = "export-workflow"
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(exportCmd)

	// Interactive Session commands
	shellCmd.GroupID = "interactive-session"
	rootCmd.AddCommand(shellCmd)
}

// Execute executes the root command and reports any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, formatError(err))
	}
	return err
}
