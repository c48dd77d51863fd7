package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/pathviz/internal/config"
	"github.com/zucenko/pathviz/server"
)

type Server struct {
	router       *way.Router
	SearchServer *server.SearchServer
}

func main() {
	cfg, err := config.Load(config.New(), os.Getenv("PATHVIZ_CONFIG"))
	if err != nil {
		log.Fatalln(err)
	}
	cfg.ApplyLogging()

	s := Server{
		SearchServer: server.NewSearchServer(cfg.Width, cfg.StepDelay),
	}
	if cfg.Layout != "" {
		if err := s.SearchServer.LoadLayout(cfg.Layout); err != nil {
			log.Fatalln(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go s.SearchServer.Loop(ctx)
	s.routes()

	httpServer := &http.Server{Addr: ":" + cfg.Port, Handler: s.router}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdown); err != nil {
			log.Warnf("shutdown %v", err)
		}
	}()

	log.WithFields(log.Fields{"port": cfg.Port, "step_delay": cfg.StepDelay}).Info("search server listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalln(err)
	}
}
