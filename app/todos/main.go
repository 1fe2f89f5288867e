package main

import (
	"context"
	"errors"
	"expvar"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jrazmi/todos/app/todos/config"
	"github.com/jrazmi/todos/app/todos/ui"
	"github.com/jrazmi/todos/bridge/repositories/todosrepobridge"
	"github.com/jrazmi/todos/bridge/scaffolding/mid"
	"github.com/jrazmi/todos/core/repositories/todosrepo"
	"github.com/jrazmi/todos/core/repositories/todosrepo/stores/todosmemstore"
	"github.com/jrazmi/todos/infrastructure/web"
	"github.com/jrazmi/todos/sdk/environment"
	"github.com/jrazmi/todos/sdk/logger"
	"github.com/jrazmi/todos/sdk/telemetry"
)

var build = "develop"
var appName = "TODOS"

func main() {
	envFile := flag.String("env", "", "path of a .env file to load (default ./.env)")
	flag.Parse()

	_ = environment.LoadPath(*envFile)
	ctx := context.Background()

	tel := telemetry.NewTelemetry()

	cfg, err := config.Load(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	cfg.Build = build

	log := logger.New(cfg.Log,
		logger.WithService(appName),
		logger.WithTraceID(tel.GetTraceID),
	)

	if err := run(ctx, log, tel, cfg); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, tel telemetry.Telemetry, cfg config.Todos) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", cfg.Build)

	// REPOSITORIES //
	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	todoRepository := todosrepo.NewRepository(log, todosmemstore.NewStore(log))
	// END REPOSITORIES //

	handler, err := webHandler(log, tel, cfg, todoRepository)
	if err != nil {
		return fmt.Errorf("webhandler: %w", err)
	}

	server := web.NewServer(cfg.Server,
		web.WithHandler(handler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		if err := server.Shutdown(ctx); err != nil {
			return err
		}
	}

	return nil
}

func webHandler(log *logger.Logger, tel telemetry.Telemetry, cfg config.Todos, todos *todosrepo.Repository) (http.Handler, error) {
	// GLOBAL MIDDLEWARE
	var global []web.Middleware
	if len(cfg.CORS.Origins) > 0 {
		global = append(global, mid.CORS(cfg.CORS.Origins...))
	}
	global = append(global,
		mid.Logger(log), // Request logging
		mid.Errors(log), // Error handling
		mid.Metrics(),   // Metrics collection
		mid.Panics(),    // Panic recovery
	)

	// INITIALIZATION
	h := web.NewWebHandler(cfg.Web,
		web.WithLogging(log.Logger),
		web.WithTelemetry(tel),
		web.WithGlobalMiddleware(global...),
	)

	// API
	todosrepobridge.AddHttpRoutes(h.Group(""), todosrepobridge.Config{
		Log:        log,
		Repository: todos,
	})

	// UI
	if err := ui.AddHandlers(h); err != nil {
		return nil, err
	}

	// DEBUG
	if cfg.Server.EnableDebug {
		h.HandleRaw("GET /debug/vars", expvar.Handler())
	}

	return h, nil
}
