package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hwkim/isdacds/cmd/cdscli/internal/bootstrap"
	"github.com/hwkim/isdacds/cmd/cdscli/internal/curveinfo"
	"github.com/hwkim/isdacds/cmd/cdscli/internal/price"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "curve":
		return curveinfo.Run(args[1:], stdin, stdout, stderr)
	case "bootstrap":
		return bootstrap.Run(args[1:], stdin, stdout, stderr)
	case "price":
		return price.Run(args[1:], stdin, stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cdscli <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  curve      Discount factor / zero rate / forward rate on a zero curve")
	fmt.Fprintln(w, "  bootstrap  Bootstrap a hazard-rate survival curve from benchmark spreads")
	fmt.Fprintln(w, "  price      Price a CDS contract against a discount and survival curve")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run `cdscli <command> -h` for command-specific help.")
}
