package system

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/mholloway/cadence/internal/cli"
	"github.com/mholloway/cadence/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." default:"127.0.0.1:8420"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(ctx.Store).Run(runCtx, c.Addr)
}
