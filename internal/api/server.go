// Package api exposes the classifier over HTTP: JSON classification and
// location endpoints plus PNG hythergraphs. It performs no classification
// logic of its own; every computation goes through the koppen package.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lox/koppen/internal/metrics"
	"github.com/lox/koppen/internal/store"
)

type Server struct {
	store *store.Store
	addr  string
	log   *zap.SugaredLogger
}

func NewServer(st *store.Store, addr string, log *zap.SugaredLogger) *Server {
	return &Server{store: st, addr: addr, log: log}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/classify", s.handleClassify)
	mux.HandleFunc("GET /api/locations", s.handleListLocations)
	mux.HandleFunc("GET /api/locations/{name}", s.handleGetLocation)
	mux.HandleFunc("DELETE /api/locations/{name}", s.handleDeleteLocation)
	mux.HandleFunc("GET /hythergraph", s.handleHythergraph)
	mux.HandleFunc("POST /hythergraph", s.handleHythergraphPost)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return countRequests(mux)
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	s.log.Infow("listening", "addr", s.addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.HTTPRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
	})
}
