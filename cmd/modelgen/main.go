// Command modelgen generates paired training and inference sources from a
// model document, lists export keys, inspects models and verifies exported
// weight archives.
//
// Usage:
//
//	modelgen [klog flags] <command> [flags] DOCUMENT [ARCHIVE]
//
// Commands:
//
//	generate  write models.py, models.rs and export_weights.py
//	keys      print the export keys, one per line
//	inspect   print a per-layer table of every model
//	verify    check a .npz archive against the export keys
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"k8s.io/klog/v2"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string, stdout io.Writer) error
}

func commands() []command {
	return []command{
		{name: "generate", summary: "write the generated artifacts", run: runGenerate},
		{name: "keys", summary: "print the export keys", run: runKeys},
		{name: "inspect", summary: "print the layers of every model", run: runInspect},
		{name: "verify", summary: "check an exported .npz archive", run: runVerify},
	}
}

// errUsage marks errors that should be followed by the usage text.
var errUsage = errors.New("usage")

func main() {
	klog.InitFlags(nil)
	flag.Usage = func() { usage(flag.CommandLine.Output()) }
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, flag.Args(), os.Stdout)
	stop()
	klog.Flush()

	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		klog.Errorf("%v", err)
		usage(os.Stderr)
		os.Exit(2)
	default:
		klog.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	for _, cmd := range commands() {
		if cmd.name == args[0] {
			return cmd.run(ctx, args[1:], stdout)
		}
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: modelgen [klog flags] <command> [flags] DOCUMENT [ARCHIVE]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands() {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'modelgen <command> -h' for command flags.")
}
