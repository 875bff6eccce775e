package main

import (
	"context"
	"fmt"
	"github.com/charmbracelet/log"
	"go.uber.org/fx"
	"io"
	"net/http"
	"os"
	"ripple/dal"
	"ripple/logic"
	"ripple/server"
	"ripple/shared"
	"ripple/texts"
)

type initErrorHandler struct {
}

func (*initErrorHandler) HandleError(err error) {
	fmt.Fprintf(os.Stderr, "Failed to initialize dependency injection\n%v", err)
}

var logger *log.Logger

func main() {

	cfg := shared.LoadConfig()
	provideConfig := func() *shared.Config {
		return cfg
	}

	logger = initLogger(cfg)
	provideLogger := func() shared.ILogger {
		return logger
	}

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			provideConfig,
			provideLogger,
			server.NewHTTPServer,
			fx.Annotate(server.NewMux, fx.ParamTags(`group:"handler_group"`)),
			shared.NewSystemClock,
			logic.NewMetrics,
			logic.NewSocialGraph,
			logic.NewDirectory,
			logic.NewDropStore,
			logic.NewEngagement,
			logic.NewRippleThreads,
			logic.NewTimeline,
			logic.NewProfilePage,
			logic.NewProfiler,
			texts.NewTexts,
			dal.NewRepo,
			asHandlerGroupDef(server.NewApiHandlerGroup),
			asHandlerGroupDef(server.NewMetricsHandlerGroup),
		),
		fx.Invoke(
			registerHooks,
			func(repo dal.IRepo) { repo.InitUpdateDb() },
			func(*http.Server) {},
			func(logic.IProfiler) {},
		),
		fx.ErrorHook(&initErrorHandler{}),
	)
	app.Run()
}

func asHandlerGroupDef(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(server.IHandlerGroup)),
		fx.ResultTags(`group:"handler_group"`),
	)
}

// initLogger writes to stdout, and also to log_file when one is configured.
func initLogger(cfg *shared.Config) *log.Logger {

	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
		if err != nil {
			msg := fmt.Sprintf("Failed to open log file '%v': %v", cfg.LogFile, err)
			log.Fatal(msg)
		}
		out = io.MultiWriter(os.Stdout, logFile)
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		TimeFormat:      "2006-01-02 15:04:05.000",
	})
	// Debug|Info|Warn|Error; anything else means Error
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.ErrorLevel
	}
	logger.SetLevel(level)

	return logger
}

func registerHooks(lc fx.Lifecycle, cfg *shared.Config, metrics logic.IMetrics, repo dal.IRepo) {
	lc.Append(
		fx.Hook{
			OnStart: func(context.Context) error {
				logger.Printf("Ripple starting up on port %d (%s store)", cfg.ServicePort, cfg.DbDriver)
				metrics.ServiceStarted()
				return nil
			},
			OnStop: func(context.Context) error {
				logger.Printf("Ripple shutting down")
				return repo.Close()
			},
		},
	)
}

