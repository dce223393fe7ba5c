// Command classc is the front-end driver: check a file's syntax and
// types, render the elaborated class-free program back to concrete
// syntax, or drive a line-at-a-time REPL. Grounded on the teacher's
// cmd/ailang/main.go (flag-based subcommand dispatch, fatih/color
// diagnostics) and internal/repl/repl.go (peterh/liner-backed history
// and prompt loop), trimmed down since this front end has no evaluator
// to hand a parsed program to — every subcommand bottoms out in
// internal/compiler.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/classc/classc/internal/compiler"
	"github.com/classc/classc/internal/config"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		helpFlag    = flag.Bool("help", false, "Show help")
		configFlag  = flag.String("config", "", "Path to a run configuration YAML file")
		printFlag   = flag.Bool("print", false, "Print the elaborated program (check only)")
		jsonFlag    = flag.Bool("json", false, "Report errors as JSON")
	)
	flag.Parse()

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *printFlag {
		cfg.Output = config.OutputPretty
	}
	if *jsonFlag {
		cfg.Output = config.OutputJSON
	}

	switch cmd := flag.Arg(0); cmd {
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: classc check <file>")
			os.Exit(1)
		}
		checkFile(flag.Arg(1), cfg)

	case "repl":
		runREPL()

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), cmd)
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("classc - a dictionary-passing type-class compiler front end"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  classc <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <file>   Check a file: lex, parse, infer, solve, elaborate\n", cyan("check"))
	fmt.Printf("  %s          Start an interactive check-only REPL\n", cyan("repl"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --config <file>  Load a run configuration YAML file")
	fmt.Println("  --print          Print the elaborated program on success")
	fmt.Println("  --json           Report errors as JSON")
}

func checkFile(filename string, cfg *config.Config) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file %q: %v\n", red("Error"), filename, err)
		os.Exit(1)
	}

	src := compiler.Source{Code: string(content), Filename: filename}
	switch cfg.Output {
	case config.OutputJSON:
		_, report := compiler.Compile(src)
		if report != nil {
			j, _ := report.ToJSON(false)
			fmt.Println(j)
			os.Exit(1)
		}
	case config.OutputPretty:
		out, report := compiler.Render(src)
		if report != nil {
			reportError(report)
			os.Exit(1)
		}
		fmt.Println(out)
	default:
		_, report := compiler.Compile(src)
		if report != nil {
			reportError(report)
			os.Exit(1)
		}
	}

	fmt.Printf("%s %s checks out\n", green("✓"), filename)
}

func reportError(report interface{ Error() string }) {
	fmt.Fprintf(os.Stderr, "%s %s\n", red("Error"), report.Error())
}

// runREPL reads one definition at a time and compiles it in isolation,
// printing either the elaborated definition or the typed error. There
// is no persistent environment across lines (spec's Non-goals exclude
// an evaluator entirely, so there is nothing for a binding to be
// remembered *for*) — each line is its own complete program.
func runREPL() {
	fmt.Printf("%s\n", bold("classc"))
	fmt.Println("Type a definition and press Enter. Ctrl-D to exit.")
	fmt.Println()

	line := liner.NewLiner()
	defer line.Close()

	historyFile := filepath.Join(os.TempDir(), ".classc_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	for {
		input, err := line.Prompt("classc> ")
		if err == io.EOF {
			fmt.Println(green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			continue
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		out, report := compiler.Render(compiler.Source{Code: input, Filename: "<repl>"})
		if report != nil {
			reportError(report)
			continue
		}
		fmt.Println(out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}
