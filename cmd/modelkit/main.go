package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/macropower/modelkit/internal/cli"
)

func main() {
	err := fang.Execute(
		context.Background(),
		cli.NewRootCmd(),
		fang.WithErrorHandler(cli.ErrorHandler),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		os.Exit(1)
	}
}
