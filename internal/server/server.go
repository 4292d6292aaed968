package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/EsgAPI/internal/adapter/utils"
	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/handlers"
	"github.com/akolanti/EsgAPI/internal/middleware"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string) {
	_logger = logger_i.NewLogger("Server")

	r := utils.GetRouter()

	// probes stay outside the auth chain, like /metrics and /swagger
	r.Router.Get("/healthz", handlers.GetHandler)

	r.Router.Post("/session", middleware.PostSessionHandler)
	r.Router.Get("/session/{id}", middleware.GetSessionHandler)

	r.Router.Post("/crawl", middleware.PostCrawlHandler)
	r.Router.Post("/report", middleware.PostReportHandler)
	r.Router.Get("/status/{id}", middleware.GetStatusHandler)

	r.Router.Post("/parameters", middleware.PostParametersHandler)
	r.Router.Get("/parameters/template", middleware.GetParametersTemplateHandler)

	r.Router.Post("/profile", middleware.PostProfileHandler)
	r.Router.Get("/profile", middleware.GetProfileHandler)
	r.Router.Post("/policies", middleware.PostPoliciesHandler)
	r.Router.Get("/policies", middleware.GetPoliciesHandler)
	r.Router.Post("/alignment", middleware.PostAlignmentHandler)
	r.Router.Get("/alignment", middleware.GetAlignmentHandler)

	r.Router.Get("/index/stats", middleware.GetIndexStatsHandler)
	r.Router.Delete("/index", middleware.DeleteIndexHandler)

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully: %s", err)
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully is shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
