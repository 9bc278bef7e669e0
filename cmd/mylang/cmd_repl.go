package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/idan-at/mylang"
)

const helpText = `REPL commands:
  :doc <name>  Show a function's parameters and documentation
  :builtins    List the built-in functions
  :help        Show this help
  :quit        Exit the REPL`

var banner = fmt.Sprintf("mylang %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", mylang.Version)

func (a *app) getReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive REPL",
		Long: `
Read lines, evaluate them against one persistent global environment and echo
every value. Input that ends inside an open call, scope or parameter list
continues on the next line.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			a.exitCode = a.repl()
		},
	}
}

// lineSource is the part of *liner.State the REPL needs.
type lineSource interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// pipeSource reads lines from a non-terminal stdin. Prompts are not printed.
type pipeSource struct {
	sc *bufio.Scanner
}

func (p *pipeSource) Prompt(string) (string, error) {
	if p.sc.Scan() {
		return p.sc.Text(), nil
	}
	if err := p.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (p *pipeSource) AppendHistory(string) {}

// openLineSource uses liner when stdin is a terminal. The returned func
// saves history and restores the terminal.
func (a *app) openLineSource() (lineSource, bool, func()) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		ln := liner.NewLiner()
		ln.SetCtrlCAborts(true)
		hist := a.cfg.HistoryPath()
		if hist != "" {
			if hf, err := os.Open(hist); err == nil {
				_, _ = ln.ReadHistory(hf)
				_ = hf.Close()
			}
		}

		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
		go func() {
			if _, ok := <-sigc; ok {
				ln.Close()
				os.Exit(130)
			}
		}()

		return ln, true, func() {
			signal.Stop(sigc)
			close(sigc)
			if hist != "" {
				if hf, err := os.Create(hist); err == nil {
					_, _ = ln.WriteHistory(hf)
					_ = hf.Close()
				} else {
					a.log.Warning("cannot save history: ", err)
				}
			}
			ln.Close()
		}
	}
	sc := bufio.NewScanner(a.stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &pipeSource{sc: sc}, false, func() {}
}

func (a *app) repl() int {
	in, interactive, done := a.openLineSource()
	defer done()
	if interactive {
		fmt.Fprintln(a.stdout, banner)
	}

	ip := a.newInterpreter()
	for {
		src, ok := readChunk(in, a.cfg.Prompt, a.cfg.ContinuationPrompt)
		if !ok {
			if interactive {
				fmt.Fprintln(a.stdout)
			}
			return 0
		}

		code := strings.TrimSpace(src)
		if code == "" {
			continue
		}
		if strings.HasPrefix(code, ":") {
			if quit := a.replCommand(ip, code); quit {
				return 0
			}
			continue
		}

		a.evalChunk(ip, src)
		in.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// evalChunk evaluates each statement of src against Global, echoing every
// value. The first error aborts the rest of the chunk.
func (a *app) evalChunk(ip *mylang.Interpreter, src string) {
	prog, err := mylang.ParseProgram(src)
	if err != nil {
		a.fail(err)
		return
	}
	for _, stmt := range prog.Statements {
		v, err := ip.EvalLine(stmt)
		if err != nil {
			a.fail(err)
			return
		}
		a.log.Debugf("evaluated %s", mylang.FormatNode(stmt))
		if v.Tag == mylang.VTAbsent {
			continue
		}
		fmt.Fprintln(a.stdout, green(a.cfg.EchoPrefix)+blue(mylang.FormatValue(v)))
	}
}

// replCommand handles a ":" line and reports whether the REPL should exit.
func (a *app) replCommand(ip *mylang.Interpreter, line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":quit":
		return true
	case ":help":
		fmt.Fprintln(a.stdout, helpText)
	case ":builtins":
		fmt.Fprintln(a.stdout, strings.Join(mylang.BuiltinNames(), " "))
	case ":doc":
		if len(fields) != 2 {
			fmt.Fprintln(a.stderr, "usage: :doc <name>")
			return false
		}
		v, err := ip.Global.Get(fields[1])
		if err != nil {
			a.fail(err)
			return false
		}
		fmt.Fprintln(a.stdout, mylang.FormatValue(v))
		if fn, ok := v.Data.(*mylang.FunctionValue); ok && fn.Doc != "" {
			fmt.Fprintln(a.stdout, green(fn.Doc))
		}
	default:
		fmt.Fprintln(a.stderr, "unknown command. Type :help for a list.")
	}
	return false
}

// readChunk reads lines until the buffered text parses or fails with
// an error other than running out of input. At end of input a pending
// partial chunk is still returned so its error gets reported.
func readChunk(in lineSource, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := in.Prompt(p)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := mylang.ParseProgram(src); mylang.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
