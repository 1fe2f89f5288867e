package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jrazmi/todos/app/todoctl/tui"
	"github.com/jrazmi/todos/sdk/environment"
	"github.com/jrazmi/todos/sdk/todoclient"
)

var appName = "TODOCTL"

func main() {
	_ = environment.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "todoctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	baseURL := environment.GetNamespaceEnvOrDefault(appName, "URL", "http://localhost:8080")

	client, err := todoclient.New(baseURL)
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}

	return tui.Run(ctx, client)
}
