// Command gcam compiles a Lisp job description into a G-code program.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("gcam", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: gcam [options] <job-file>\n\n")
		fmt.Fprintf(stderr, "gcam compiles a Lisp job description into a G-code program.\n")
		fmt.Fprintf(stderr, "Use - as the job file to read from standard input.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  gcam plate.gcam              # Print the program to stdout\n")
		fmt.Fprintf(stderr, "  gcam -o plate.nc plate.gcam  # Save the program to a file\n")
		fmt.Fprintf(stderr, "  gcam -p 4 plate.gcam         # Render with 4 fractional digits\n")
		fmt.Fprintf(stderr, "  gcam --json plate.gcam       # Output the full result as JSON\n")
	}

	outputFlag := fs.StringP("output", "o", "", "Write the program to the specified file instead of stdout")
	precisionFlag := fs.IntP("precision", "p", -1, "Override the job's fractional digits (0-4)")
	verboseFlag := fs.BoolP("verbose", "v", false, "Log pipeline steps to stderr")
	jsonFlag := fs.BoolP("json", "j", false, "Output program and diagnostics as JSON")
	versionFlag := fs.BoolP("version", "V", false, "Print version information")
	helpFlag := fs.BoolP("help", "h", false, "Show this help message")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *helpFlag {
		fs.Usage()
		return 0
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "gcam version %s\n", version)
		return 0
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	log.SetFlags(0)
	log.SetPrefix("gcam: ")
	log.SetOutput(stderr)
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	path := fs.Arg(0)
	source, err := readSource(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading %s: %v\n", path, err)
		return 1
	}
	log.Printf("read %s (%d bytes)", path, len(source))

	app := NewApp()
	if fs.Changed("precision") {
		app.SetPrecision(*precisionFlag)
		log.Printf("precision override: %d", *precisionFlag)
	}
	result := app.Compile(string(source))
	log.Printf("compiled: %d blocks, %d errors, %d warnings",
		result.Blocks, len(result.Errors), len(result.Warnings))

	if *jsonFlag {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(stderr, "Error encoding result: %v\n", err)
			return 1
		}
		if len(result.Errors) > 0 {
			return 1
		}
		return 0
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", formatDiagnostic(path, w))
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			fmt.Fprintf(stderr, "error: %s\n", formatDiagnostic(path, e))
		}
		return 1
	}

	if *outputFlag != "" {
		if err := os.WriteFile(*outputFlag, []byte(result.Program), 0644); err != nil {
			fmt.Fprintf(stderr, "Error writing program to %s: %v\n", *outputFlag, err)
			return 1
		}
		log.Printf("wrote %s", *outputFlag)
		return 0
	}

	fmt.Fprint(stdout, result.Program)
	return 0
}

func readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// formatDiagnostic renders d as file:line:col: message, leaving out
// unknown positions.
func formatDiagnostic(path string, d ErrorData) string {
	switch {
	case d.Line > 0 && d.Col > 0:
		return fmt.Sprintf("%s:%d:%d: %s", path, d.Line, d.Col, d.Message)
	case d.Line > 0:
		return fmt.Sprintf("%s:%d: %s", path, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", path, d.Message)
}
