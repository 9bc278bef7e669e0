package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idan-at/mylang/internal/config"
)

const helloWorld = `let main [] {
  (println "Hello, World!")
  42
}
`

// runCLI runs the command line with an isolated HOME and colors disabled.
func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvVar, "")
	var out, errb bytes.Buffer
	code = run(append(args, "--no-color"), strings.NewReader(stdin), &out, &errb)
	return out.String(), errb.String(), code
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_Run_HelloWorld_Exits_With_Main_Result(t *testing.T) {
	path := writeFile(t, "main.my", helloWorld)

	stdout, stderr, code := runCLI(t, "", path)
	require.Equal(t, 42, code)
	require.Equal(t, "Hello, World!\n", stdout)
	require.Empty(t, stderr)

	stdout, _, code = runCLI(t, "", "run", path)
	require.Equal(t, 42, code)
	require.Equal(t, "Hello, World!\n", stdout)
}

func Test_Run_Nil_Main_Exits_Zero(t *testing.T) {
	path := writeFile(t, "main.my", "let main [] nil\n")
	_, stderr, code := runCLI(t, "", path)
	require.Equal(t, 0, code)
	require.Empty(t, stderr)
}

func Test_Run_Invalid_Exit_Code(t *testing.T) {
	path := writeFile(t, "main.my", `let main [] "done"`)
	_, stderr, code := runCLI(t, "", path)
	require.Equal(t, 1, code)
	require.Equal(t, "InvalidExitCodeError: main returned with 'done' (expected an int or nil)\n", stderr)
}

func Test_Run_Missing_Main(t *testing.T) {
	path := writeFile(t, "main.my", "let x 1\n")
	_, stderr, code := runCLI(t, "", path)
	require.Equal(t, 1, code)
	require.Equal(t, "SymbolNotFound: main symbol does not exist\n", stderr)
}

func Test_Run_Parse_Error_Shows_Snippet(t *testing.T) {
	path := writeFile(t, "main.my", "let main [] {\n  (println 1\n}")
	_, stderr, code := runCLI(t, "", path)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "PARSE ERROR in "+path+" at 3:1")
	require.Contains(t, stderr, "   2 |   (println 1\n")
}

func Test_Run_Runtime_Error(t *testing.T) {
	path := writeFile(t, "main.my", "let main [] (/ 1 0)\n")
	_, stderr, code := runCLI(t, "", path)
	require.Equal(t, 1, code)
	require.Equal(t, "DivisionByZeroError: division by zero\n", stderr)
}

func Test_Run_Missing_File(t *testing.T) {
	_, stderr, code := runCLI(t, "", filepath.Join(t.TempDir(), "nope.my"))
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "nope.my")
}

func Test_Run_Max_Call_Depth_From_Config(t *testing.T) {
	cfg := writeFile(t, "cfg.yaml", "maxCallDepth: 50\n")
	path := writeFile(t, "main.my", "let loop [n] (loop (+ n 1))\nlet main [] (loop 0)\n")
	_, stderr, code := runCLI(t, "", path, "--config", cfg)
	require.Equal(t, 1, code)
	require.Equal(t, "StackOverflowError: maximum call depth exceeded (50)\n", stderr)
}

func Test_Run_Bad_Config_Is_A_Usage_Error(t *testing.T) {
	cfg := writeFile(t, "cfg.yaml", "maxCallDepth: 0\n")
	path := writeFile(t, "main.my", helloWorld)
	stdout, stderr, code := runCLI(t, "", path, "--config", cfg)
	require.Equal(t, 2, code)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "maxCallDepth must be positive")
}

func Test_Repl_Echoes_Values_And_Keeps_Going_After_Errors(t *testing.T) {
	in := strings.Join([]string{
		"let add [a b] (+ a b)",
		"(add 1",
		"   2)",
		`(println "hi")`,
		"nope",
		"(add 1 1) (add 2 2)",
		":quit",
		"(add 5 5)",
	}, "\n") + "\n"

	stdout, stderr, code := runCLI(t, in, "repl")
	require.Equal(t, 0, code)
	require.Equal(t, "; 3\nhi\n; 2\n; 4\n", stdout)
	require.Equal(t, "SymbolNotFound: nope symbol does not exist\n", stderr)
}

func Test_Repl_Is_The_Default_Command(t *testing.T) {
	stdout, _, code := runCLI(t, "(list 1 2.5 \"x\")\n")
	require.Equal(t, 0, code)
	require.Equal(t, "; [1 2.5 x]\n", stdout)
}

func Test_Repl_Bindings_Persist_Across_Lines(t *testing.T) {
	stdout, stderr, _ := runCLI(t, "let x 10\nlet x 11\nx\n", "repl")
	require.Equal(t, "; 10\n", stdout)
	require.Equal(t, "RedeclarationError: identifier 'x' already exists\n", stderr)
}

func Test_Repl_Incomplete_Input_At_EOF_Is_Reported(t *testing.T) {
	_, stderr, code := runCLI(t, "(+ 1\n", "repl")
	require.Equal(t, 0, code)
	require.Equal(t, "ParserError: expected '' to be ')' (1:5)\n", stderr)
}

func Test_Repl_Echo_Prefix_From_Config(t *testing.T) {
	cfg := writeFile(t, "cfg.yaml", "echoPrefix: \"=> \"\n")
	stdout, _, _ := runCLI(t, "(* 6 7)\n", "repl", "--config", cfg)
	require.Equal(t, "=> 42\n", stdout)
}

func Test_Repl_Commands(t *testing.T) {
	stdout, stderr, _ := runCLI(t, ":doc pow\n:doc missing\n:bogus\n", "repl")
	require.True(t, strings.HasPrefix(stdout, "<function pow [a b]>\n"), stdout)
	require.Contains(t, stderr, "SymbolNotFound: missing symbol does not exist")
	require.Contains(t, stderr, "unknown command")

	stdout, _, _ = runCLI(t, ":builtins\n", "repl")
	require.Contains(t, stdout, "println")
}

func Test_Tokens_Lists_Positions_And_Categories(t *testing.T) {
	path := writeFile(t, "t.my", "let x (+ 1 2.5)")
	stdout, _, code := runCLI(t, "", "tokens", path)
	require.Equal(t, 0, code)
	require.Equal(t, strings.Join([]string{
		"1:1 LET 'let '",
		"1:5 IDENTIFIER 'x'",
		"1:7 LPAREN '('",
		"1:8 IDENTIFIER '+'",
		"1:10 INT '1'",
		"1:12 FLOAT '2.5'",
		"1:15 RPAREN ')'",
	}, "\n")+"\n", stdout)
}

func Test_Tokens_Lexer_Error(t *testing.T) {
	path := writeFile(t, "t.my", "let x #")
	_, stderr, code := runCLI(t, "", "tokens", path)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "LEXICAL ERROR in "+path+" at 1:7: unexpected token '#'")
}

func Test_Ast_Dumps_Without_Addresses(t *testing.T) {
	path := writeFile(t, "t.my", "let answer 42")
	stdout, _, code := runCLI(t, "", "ast", path)
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "mylang.Let")
	require.Contains(t, stdout, `"answer"`)
	require.NotContains(t, stdout, "0xc0")
}

func Test_Fmt_Print_Check_And_Write(t *testing.T) {
	messy := "let main [] { (println \"hi\")\n 0 }"
	path := writeFile(t, "main.my", messy)

	stdout, _, code := runCLI(t, "", "fmt", path)
	require.Equal(t, 0, code)
	want := "let main [] {\n  (println \"hi\")\n  0\n}\n"
	require.Equal(t, want, stdout)

	stdout, _, code = runCLI(t, "", "fmt", "--check", path)
	require.Equal(t, 1, code)
	require.Equal(t, path+"\n", stdout)

	_, _, code = runCLI(t, "", "fmt", "-w", path)
	require.Equal(t, 0, code)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, want, string(got))

	stdout, _, code = runCLI(t, "", "fmt", "--check", path)
	require.Equal(t, 0, code)
	require.Empty(t, stdout)
}

func Test_Version(t *testing.T) {
	stdout, _, code := runCLI(t, "", "version")
	require.Equal(t, 0, code)
	require.True(t, strings.HasPrefix(stdout, "mylang "), stdout)
}
