// Package main is the entry point for the fastaccel CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fastaccel/cli/internal/cmd"
	oerrors "github.com/fastaccel/cli/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(oerrors.ExitCodeFromError(err))
	}
}
