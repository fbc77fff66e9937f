package handlers

import (
	"context"

	"github.com/imamik/onboard/internal/onboarding"
	"github.com/imamik/onboard/internal/server"
)

// listenAndServe can be replaced in tests.
var listenAndServe = func(ctx context.Context, srv *server.Server, addr string) error {
	return srv.ListenAndServe(ctx, addr)
}

// Serve exposes wizard sessions over HTTP until ctx is cancelled.
func Serve(ctx context.Context, configPath, addr string) error {
	env, err := setup(ctx, configPath, logTarget{})
	if err != nil {
		return err
	}
	defer env.close()

	if addr == "" {
		addr = env.cfg.Server.Addr
	}

	srv := server.New(
		func() *onboarding.Wizard { return env.newWizard() },
		server.WithMetrics(env.metrics),
		server.WithLogger(env.log.WithName("http")),
		server.WithSessionTTL(env.cfg.Server.SessionTTL),
	)
	return listenAndServe(ctx, srv, addr)
}
