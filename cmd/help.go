package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// outputWriter overrides where PrintHelp writes. Nil means stdout.
var outputWriter io.Writer

// commandOrder is the order commands appear in the help text.
var commandOrder = []string{
	"show",
	"get",
	"set",
	"reset",
	"edit",
	"keys",
	"profiles",
	"export",
	"import",
	"migrate",
	"hooks",
	"verify",
	"help",
	"version",
}

// helpCmd represents the help command
var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show this help message",
	Long:  `Show this help message, or the help of a command.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if target, _, err := cmd.Root().Find(args); err == nil && target != cmd.Root() {
				_ = target.Help()
				return
			}
		}
		_ = cmd.Root().Help()
	},
}

func init() {
	RootCmd.SetHelpCommand(helpCmd)
}

func defaultHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	if cmd.Long != "" {
		fmt.Fprintln(out, strings.TrimSpace(cmd.Long))
	} else {
		fmt.Fprintln(out, cmd.Short)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, cmd.UsageString())
}

// PrintHelp writes the top level help text listing cmd's subcommands.
func PrintHelp(cmd *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-22s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`roomprefs v%s

%s

USAGE:
    roomprefs [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -p, --profile NAME      Settings profile to use
        --backend NAME      Storage backend (toml, sqlite, redis, dual, memory)
        --debug             Print debug output
    -q, --quiet             Only print errors
    -h, --help              Show help message
`, cmd.Version, cmd.Short, strings.Join(cmdLines, "\n"))

	w := outputWriter
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprint(w, helpText)
}
