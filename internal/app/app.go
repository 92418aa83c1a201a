package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gradescope_proxy/internal/config"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()

	logCloser := setupLogger(s.ServiceProvider.LogCfg())
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Фоновые задачи живут до сигнала остановки
	go s.ServiceProvider.SessionRepo().Run(ctx, s.ServiceProvider.SessionCfg().SweepInterval())
	go s.ServiceProvider.RateLimiter().Run(ctx)

	httpCfg := s.ServiceProvider.HTTPCfg()
	srv := &http.Server{
		Addr:              httpCfg.Address(),
		Handler:           s.ServiceProvider.Router(),
		ReadTimeout:       httpCfg.ReadTimeout(),
		ReadHeaderTimeout: httpCfg.ReadTimeout(),
		WriteTimeout:      httpCfg.WriteTimeout(),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("starting server at %s (upstream %s)", httpCfg.Address(), s.ServiceProvider.UpstreamCfg().BaseURL())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down, %d active sessions will be dropped", s.ServiceProvider.SessionRepo().Count())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
