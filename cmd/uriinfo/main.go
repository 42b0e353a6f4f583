// Command uriinfo parses a URI, applies the requested component changes
// and prints the resulting components.
//
// Usage:
//
//	uriinfo [flags] <uri>
//
// Invalid input (malformed URI, out of range port, bad flag values) exits with code 2.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ghettovoice/gouri/internal/errorutil"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newCommand(os.Stdout, os.Stderr).Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errorutil.IsInvalidArgumentErr(err) {
		return 2
	}
	return 1
}
