package main

import (
	"github.com/spf13/cobra"

	"github.com/idan-at/mylang"
)

func (a *app) getRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run a program",
		Long: `
Evaluate every top-level line of the file, then call main. The exit code is
main's int result, 0 for nil, and 1 for errors or any other result.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a.exitCode = a.runFile(args[0])
		},
	}
}

// runFile parses and runs path. Lexer and parser errors are shown with a
// source snippet.
func (a *app) runFile(path string) int {
	src, ok := a.readSource(path)
	if !ok {
		return 1
	}
	prog, err := mylang.ParseProgram(src)
	if err != nil {
		a.fail(mylang.WrapErrorWithSource(err, path, src))
		return 1
	}
	a.log.Debugf("parsed %s: %d statements", path, len(prog.Statements))

	v, err := a.newInterpreter().RunProgram(prog)
	if err != nil {
		a.fail(err)
		return 1
	}
	code, err := mylang.ExitCode(v)
	if err != nil {
		a.fail(err)
	}
	a.log.Debugf("main returned %s, exit code %d", mylang.FormatValue(v), code)
	return code
}
