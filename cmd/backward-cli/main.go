package main

import (
	"context"
	"log"
	"os"

	"github.com/aooxin/backward/cmd/cli"
)

func main() {
	ctx := context.Background()

	cliApp := cli.NewCLI()
	cliApp.RegisterCommand(cli.NewBackwardCommand())

	if err := cliApp.Run(ctx, os.Args[1:]); err != nil {
		log.Printf("CLI execution failed: %v", err)
		os.Exit(1)
	}
}
