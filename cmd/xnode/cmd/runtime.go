package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/xnode/pkg/config"
	"github.com/OpenTraceLab/xnode/pkg/crossing"
	"github.com/OpenTraceLab/xnode/pkg/jvm"
)

// session is a toolkit runtime a command can call and then release.
type session interface {
	jvm.Invoker
	Close() error
}

type simSession struct {
	*jvm.SimRuntime
}

func (simSession) Close() error { return nil }

// startRuntime opens the runtime selected by cfg. Tests replace it.
var startRuntime = func(ctx context.Context, cfg *config.Config) (session, error) {
	if cfg.Runtime.Mode == config.RuntimeSim {
		cols, rows, err := cfg.SimGrid()
		if err != nil {
			return nil, err
		}
		dev := crossing.NewSimDevice(cfg.Runtime.SimName, cols, rows)
		return simSession{dev.Runtime()}, nil
	}

	jc, err := cfg.JVM()
	if err != nil {
		return nil, err
	}
	rt, err := jvm.Start(ctx, jc)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// withRuntime starts the runtime, runs fn and shuts the runtime down.
func withRuntime(cmd *cobra.Command, fn func(ctx context.Context, inv jvm.Invoker) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := startRuntime(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			jvm.Logger().Warn("closing runtime", zap.Error(err))
		}
	}()

	return fn(ctx, rt)
}
