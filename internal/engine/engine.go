package engine

import (
	"context"

	"kakaku/internal/transport"
)

type Engine struct {
	transport *transport.Server
}

// Addr is the bound prediction listener address.
func (e *Engine) Addr() string { return e.transport.Addr() }

func (e *Engine) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		e.transport.Stop()
	}()
	return e.transport.Serve()
}
