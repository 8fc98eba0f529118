package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/doeshing/aih-go/internal/app"
	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/infrastructure/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, app.StdIO(), os.Args[1:])
	stop()
	os.Exit(exitCode(err))
}

// exitCode prints err and maps it to the process status: an interrupt is a
// clean exit, configuration problems are 2, everything else is 1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stdout, "\nCancelled.")
		return 0
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	var cfgErr *domain.ConfigError
	if errors.As(err, &cfgErr) {
		return 2
	}
	return 1
}
