package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/idan-at/mylang"
)

// astDumper prints parse trees without pointer addresses so dumps are stable
// between runs.
var astDumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func (a *app) getTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "List the tokens of a file",
		Long: `
Print one line per significant token as "row:col CATEGORY 'text'".`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a.exitCode = a.tokens(args[0])
		},
	}
}

func (a *app) tokens(path string) int {
	src, ok := a.readSource(path)
	if !ok {
		return 1
	}
	toks, err := mylang.Tokenize(src)
	if err != nil {
		a.fail(mylang.WrapErrorWithSource(err, path, src))
		return 1
	}
	for _, t := range toks {
		if t.Type == mylang.EOF {
			break
		}
		fmt.Fprintf(a.stdout, "%d:%d %s '%s'\n", t.Line, t.Col, t.Type, t.Text)
	}
	return 0
}

func (a *app) getAstCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Dump the parse tree of a file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a.exitCode = a.ast(args[0])
		},
	}
}

func (a *app) ast(path string) int {
	src, ok := a.readSource(path)
	if !ok {
		return 1
	}
	prog, err := mylang.ParseProgram(src)
	if err != nil {
		a.fail(mylang.WrapErrorWithSource(err, path, src))
		return 1
	}
	astDumper.Fdump(a.stdout, prog)
	return 0
}

// fmtEnv holds the flags of the fmt command.
type fmtEnv struct {
	write bool
	check bool
}

func (a *app) getFmtCmd() *cobra.Command {
	env := &fmtEnv{}
	ret := &cobra.Command{
		Use:   "fmt <file>...",
		Short: "Print programs in canonical layout",
		Long: `
Reprint each file with one statement per line and two-space indented scopes.
Comments are not preserved. With --check, list the files whose layout would
change and exit 1 if there are any.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a.exitCode = a.format(env, args)
		},
	}
	ret.Flags().BoolVarP(&env.write, "write", "w", false, "Write the result back to the file")
	ret.Flags().BoolVar(&env.check, "check", false, "Only report files that are not formatted")
	ret.MarkFlagsMutuallyExclusive("write", "check")
	return ret
}

func (a *app) format(env *fmtEnv, paths []string) int {
	ret := 0
	for _, path := range paths {
		src, ok := a.readSource(path)
		if !ok {
			ret = 1
			continue
		}
		out, err := mylang.Pretty(src)
		if err != nil {
			a.fail(mylang.WrapErrorWithSource(err, path, src))
			ret = 1
			continue
		}
		switch {
		case env.check:
			if out != src {
				fmt.Fprintln(a.stdout, path)
				ret = 1
			}
		case env.write:
			if out == src {
				continue
			}
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				a.fail(err)
				ret = 1
			}
		default:
			fmt.Fprint(a.stdout, out)
		}
	}
	return ret
}
