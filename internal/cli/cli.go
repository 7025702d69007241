package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/dutsim/nvmelite/internal/logging"
)

// Run is the main entry point. Returns the process exit code.
func Run(out, errOut io.Writer, args []string) int {
	logging.SetDefault(logging.NewLogger(&logging.Config{Level: logging.LevelInfo, Output: errOut}))

	globalFlags := flag.NewFlagSet("nvmelite-dut", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.Usage = func() {}
	globalFlags.SetOutput(&strings.Builder{})
	flagHelp := globalFlags.BoolP("help", "h", false, "show help")

	if err := globalFlags.Parse(args); err != nil {
		fprintln(errOut, "error:", err)
		return 1
	}

	commands := allCommands()
	commandMap := make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd
	}

	commandAndArgs := globalFlags.Args()

	if *flagHelp || len(commandAndArgs) == 0 {
		printUsage(out, commands)
		if len(commandAndArgs) == 0 && !*flagHelp {
			return 1
		}
		return 0
	}

	cmdName := commandAndArgs[0]
	cmd, ok := commandMap[cmdName]
	if !ok {
		fprintln(errOut, "error: unknown command:", cmdName)
		printUsage(errOut, commands)
		return 1
	}

	cmdIO := NewIO(out, errOut)
	return cmd.Run(context.Background(), cmdIO, commandAndArgs[1:])
}

func allCommands() []*Command {
	return []*Command{
		RunOneCmd(),
		RunMatrixCmd(),
	}
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, "nvmelite-dut - deterministic NVMe-lite DUT simulator")
	fprintln(w)
	fprintln(w, "Usage: nvmelite-dut [flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Commands:")
	for _, cmd := range commands {
		fprintln(w, cmd.HelpLine())
	}
}
