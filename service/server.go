package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// HttpServer runs the API and implements the service lifecycle used by main.
type HttpServer struct {
	server *http.Server
}

func NewHttpServer(port int64, handler http.Handler) *HttpServer {
	return &HttpServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *HttpServer) Start() {
	log.WithField("addr", s.server.Addr).Info("[HTTP] server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("[HTTP] server exited")
	}
}

func (s *HttpServer) Stop() {
	log.Debug("[HTTP] server stopping")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("[HTTP] error during shutdown")
	}
	log.Info("[HTTP] server stopped")
}
