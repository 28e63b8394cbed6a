package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/LetsZero/zero-compiler/internal/builtins"
	"github.com/LetsZero/zero-compiler/internal/pipeline"
)

const version = "0.1.0"

func main() {
	fs := flag.NewFlagSet("zero", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	help := fs.Bool("h", false, "Show this help message")
	fs.BoolVar(help, "help", false, "Show this help message")
	showVersion := fs.Bool("v", false, "Show version")
	fs.BoolVar(showVersion, "version", false, "Show version")
	dumpIR := fs.Bool("dump-ir", false, "Print the compiled IR instead of running it")
	_ = fs.Bool("dump-ast", false, "Reserved: print the parsed AST")

	// Unknown flags exit 1, not the flag package's default exit 2.
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if *help {
		printUsage(fs)
		os.Exit(0)
	}
	if *showVersion {
		fmt.Printf("zero %s\n", version)
		os.Exit(0)
	}

	args := fs.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "error: missing source file")
		printUsage(fs)
		os.Exit(1)
	}

	res := pipeline.Compile(pipeline.Options{
		EntryPath: args[0],
		DumpIR:    *dumpIR,
		Builtins:  builtins.New(),
	})

	if res.Diagnostics != "" {
		fmt.Fprint(os.Stderr, res.Diagnostics)
	}
	if !res.Success {
		os.Exit(1)
	}
	if *dumpIR {
		fmt.Print(res.IRDump)
		os.Exit(0)
	}
	os.Exit(res.ExitCode)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "Usage: zero [options] <file>")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	fs.PrintDefaults()
}
