// Package transport terminates client HTTP requests. The predict handler is
// the only place internal failures are mapped to wire status codes.
package transport

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

type Server struct {
	http *http.Server
	lis  net.Listener
}

func StartServer(addr string, h *Handler) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/predict", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s := &Server{
		http: &http.Server{
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		lis: lis,
	}
	return s, nil
}

// Addr is the bound listen address, useful when the config asked for :0.
func (s *Server) Addr() string { return s.lis.Addr().String() }

func (s *Server) Serve() error {
	err := s.http.Serve(s.lis)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.http.Shutdown(ctx)
}
