// Command mylang runs mylang programs and hosts the interactive REPL.
//
//	mylang <file>                 run a program, exit with main's result
//	mylang run <file>             same as above
//	mylang repl                   interactive session (also: no arguments)
//	mylang tokens <file>          list the token stream
//	mylang ast <file>             dump the parse tree
//	mylang fmt [-w|--check] <f>   print a program in canonical layout
//	mylang version
//
// Global flags: --config <path>, --verbose, --no-color.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/spf13/cobra"

	"github.com/idan-at/mylang"
	"github.com/idan-at/mylang/internal/config"
)

const appName = "mylang"

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	blue  = color.New(color.FgHiBlue).SprintFunc()
)

// app carries the state shared by every subcommand. Commands store their
// result in exitCode instead of calling os.Exit so they can run in tests.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	flagConfig  string
	flagVerbose bool
	flagNoColor bool

	cfg      *config.Config
	log      slog.Logger
	exitCode int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line args and returns the process exit code.
// Usage and configuration errors exit with 2.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, log: logger.NewNopLogger()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", appName, err)
		return 2
	}
	return a.exitCode
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " [file]",
		Short: "Run mylang programs",
		Long: `
Run a mylang program, or start the REPL when no file is given.

A program runs by evaluating its top-level lines and then calling main. The
process exits with main's result: an int is used as-is and nil means 0.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				a.exitCode = a.runFile(args[0])
				return
			}
			a.exitCode = a.repl()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.flagConfig, "config", "", "Config file (default $"+config.EnvVar+" or ~/"+config.DefaultFileName+")")
	pf.BoolVarP(&a.flagVerbose, "verbose", "v", false, "Log interpreter events to stderr")
	pf.BoolVar(&a.flagNoColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		a.getRunCmd(),
		a.getReplCmd(),
		a.getTokensCmd(),
		a.getAstCmd(),
		a.getFmtCmd(),
		a.getVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger before any command runs.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.flagConfig)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.flagNoColor || !cfg.Color {
		color.NoColor = true
	}
	if a.flagVerbose {
		a.log = logger.NewFromOptions(&logger.Options{
			SyncWriter:   os.Stderr,
			IncludeDebug: true,
		})
	}
	return nil
}

func (a *app) newInterpreter() *mylang.Interpreter {
	return mylang.NewInterpreter(
		mylang.WithStdout(a.stdout),
		mylang.WithLogger(a.log),
		mylang.WithMaxCallDepth(a.cfg.MaxCallDepth),
	)
}

// fail prints err to stderr as "<Kind>: <message>".
func (a *app) fail(err error) {
	fmt.Fprintln(a.stderr, red(mylang.Describe(err)))
}

// readSource reads a program file and reports failures itself.
func (a *app) readSource(path string) (string, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		a.fail(err)
		return "", false
	}
	return string(b), true
}

func (a *app) getVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "%s %s (built %s)\n", appName, mylang.Version, mylang.BuildDate)
		},
	}
}
