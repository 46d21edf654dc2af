package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mood-tracker/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(newApp)
	if err := root.ExecuteContext(ctx); err != nil {
		eh := cli.NewErrorHandler()
		fmt.Fprintf(os.Stderr, "Error: %v\n", eh.HandleSimple(err))
		if hint := eh.Hint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		stop()
		os.Exit(eh.ExitCode(err))
	}
}
