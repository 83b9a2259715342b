// Package main provides the CLI entrypoint for formbind.
//
// formbind works with YAML form layouts:
//   - check validates a layout and reports diagnostics with suggestions
//   - roundtrip fills a layout with a JSON record and prints the extracted record
//   - fmt rewrites a layout with defaults applied
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"form-binder/binder"
	"form-binder/internal/diagnostic"
	"form-binder/internal/layout"
	"form-binder/primitive"
	"form-binder/record"
)

const usage = `formbind - bind JSON records to YAML form layouts

Usage:
  formbind [flags] check <layout.yaml>
  formbind [flags] roundtrip <layout.yaml> [record.json]
  formbind [flags] fmt <layout.yaml>

Flags:
`

var errUsage = errors.New("usage")

// cliFlags holds parsed command-line flags.
type cliFlags struct {
	verbose bool
	dump    bool
	metrics bool
	write   bool
	sets    assignments
}

// assignments collects repeated -set name=value flags.
type assignments []string

func (a *assignments) String() string { return strings.Join(*a, ",") }

func (a *assignments) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected name=value, got %q", v)
	}

	*a = append(*a, v)

	return nil
}

func main() {
	fs := flag.NewFlagSet("formbind", flag.ContinueOnError)
	flags := parseFlags(fs, os.Args[1:])

	if flags == nil {
		os.Exit(2)
	}

	logger := setupLogger(flags.verbose)

	err := run(fs.Args(), flags, logger, os.Stdin, os.Stdout)
	if errors.Is(err, errUsage) {
		fs.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "formbind:", err)
		os.Exit(1)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) *cliFlags {
	flags := &cliFlags{}

	fs.BoolVar(&flags.verbose, "v", false, "enable debug logging")
	fs.BoolVar(&flags.dump, "dump", false, "dump the bound node tree to stderr")
	fs.BoolVar(&flags.metrics, "metrics", false, "print binder metrics to stderr")
	fs.BoolVar(&flags.write, "w", false, "fmt: write the result back to the layout file")
	fs.Var(&flags.sets, "set", "roundtrip: set field text before extracting, name=value; checkboxes take true or false (repeatable)")

	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil
	}

	return flags
}

func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run(args []string, flags *cliFlags, logger *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	if len(args) < 2 {
		return errUsage
	}

	cmd, path := args[0], args[1]

	f, err := layout.LoadFile(path)
	if err != nil {
		return err
	}

	switch cmd {
	case "check":
		return check(f, logger, stdout)
	case "roundtrip":
		src := stdin
		if len(args) > 2 {
			file, err := os.Open(args[2])
			if err != nil {
				return fmt.Errorf("failed to open record: %w", err)
			}
			defer file.Close()

			src = file
		}

		return roundtrip(f, src, flags, logger, stdout)
	case "fmt":
		if flags.write {
			return layout.WriteFile(f, path)
		}

		data, err := layout.Marshal(f)
		if err != nil {
			return err
		}

		_, err = stdout.Write(data)

		return err
	default:
		return errUsage
	}
}

func check(f *layout.File, logger *slog.Logger, stdout io.Writer) error {
	diags := layout.Validate(f)
	printDiagnostics(stdout, diags)

	logger.Debug("layout checked", "errors", len(diags.Errors), "warnings", len(diags.Warnings))

	return diags.Error()
}

func roundtrip(f *layout.File, src io.Reader, flags *cliFlags, logger *slog.Logger, stdout io.Writer) error {
	var rec record.Record
	if err := json.NewDecoder(src).Decode(&rec); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}

	root, err := layout.Build(f)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	opts := append(f.Options(),
		binder.WithLogger(logger),
		binder.WithMetrics(reg),
		binder.WithData(rec),
	)

	b, err := binder.New(root, opts...)
	if err != nil {
		return err
	}

	for _, set := range flags.sets {
		name, value, _ := strings.Cut(set, "=")

		n := root.Find(name)
		if n == nil {
			return fmt.Errorf("no field named %q", name)
		}

		if n.Kind == primitive.KindCheckbox {
			b.SetChecked(n, value == "true")
			continue
		}

		b.SetValue(n, value)
	}

	out := b.Extract(false)

	diags := b.Diagnostics()
	printDiagnostics(os.Stderr, &diags)

	if flags.dump {
		spew.Fdump(os.Stderr, root)
	}

	if flags.metrics {
		if err := writeMetrics(os.Stderr, reg); err != nil {
			return err
		}
	}

	if out == nil {
		if first := b.Focused(); first != nil {
			return fmt.Errorf("record is invalid, first invalid field %q", first.Name)
		}

		return errors.New("record is invalid")
	}

	logger.Debug("record extracted", "changed", b.Changed())

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fmt.Fprintf(w, "%s: %s\n", d.Severity, d)
	}
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}

	return nil
}
