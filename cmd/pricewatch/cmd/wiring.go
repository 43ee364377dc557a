package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/pricewatch/internal/config"
	"github.com/donaldgifford/pricewatch/internal/engine"
	"github.com/donaldgifford/pricewatch/internal/notify"
	"github.com/donaldgifford/pricewatch/internal/source"
	"github.com/donaldgifford/pricewatch/internal/store"
)

// services bundles the long-lived collaborators a command needs.
type services struct {
	store   *store.PostgresStore
	engine  *engine.Engine
	closers []func() error
}

func (s *services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// closeServices releases svc and logs anything that failed to close.
func closeServices(svc *services, log *slog.Logger) {
	if err := svc.Close(); err != nil {
		log.Error("closing services failed", "error", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*store.PostgresStore, error) {
	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return st, nil
}

// buildServices wires the store, price source, notifiers and engine from cfg.
func buildServices(ctx context.Context, cfg *config.Config, log *slog.Logger) (*services, error) {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc := &services{store: st}
	svc.closers = append(svc.closers, func() error { st.Close(); return nil })

	n, err := buildNotifier(cfg, log, svc)
	if err != nil {
		closeServices(svc, log)
		return nil, err
	}

	client := newSourceClient(&cfg.Source, log)

	svc.engine = engine.NewEngine(st, client, client, n,
		engine.WithLogger(log),
		engine.WithConcurrency(cfg.Worker.Concurrency),
		engine.WithFetchTimeout(cfg.Source.Timeout),
		engine.WithRefillBudget(cfg.Worker.RefillBudget),
	)
	return svc, nil
}

func newSourceClient(cfg *config.SourceConfig, log *slog.Logger) *source.Client {
	return source.NewClient(cfg.BaseURL,
		source.WithEndpoints(cfg.PinURL, cfg.PriceURL),
		source.WithTimeout(cfg.Timeout),
		source.WithRetries(cfg.Retries, cfg.RetryWait),
		source.WithRateLimiter(source.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)),
		source.WithUserAgent(cfg.UserAgent),
		source.WithLogger(log.With("component", "source")),
	)
}

// buildNotifier assembles every enabled sink. With none enabled, alerts are
// logged and dropped.
func buildNotifier(cfg *config.Config, log *slog.Logger, svc *services) (notify.Notifier, error) {
	nc := &cfg.Notifications
	var sinks notify.Multi

	if nc.Email.Enabled {
		email, err := notify.NewEmailNotifier(notify.EmailConfig{
			Host:     nc.Email.Host,
			Port:     nc.Email.Port,
			Username: nc.Email.Username,
			Password: nc.Email.Password,
			From:     nc.Email.From,
			Subject:  nc.Email.Subject,
			Timeout:  nc.Email.Timeout,
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, email)
	}

	if nc.Discord.Enabled {
		sinks = append(sinks, notify.NewDiscordNotifier(nc.Discord.WebhookURL))
	}

	if nc.AMQP.Enabled {
		pub, err := notify.NewAMQPNotifier(nc.AMQP.URL, nc.AMQP.Exchange, nc.AMQP.Queue)
		if err != nil {
			return nil, err
		}
		svc.closers = append(svc.closers, pub.Close)
		sinks = append(sinks, pub)
	}

	switch len(sinks) {
	case 0:
		log.Warn("no notification sinks enabled, alerts will only be logged")
		return notify.NewNoOpNotifier(log), nil
	case 1:
		return sinks[0], nil
	default:
		return sinks, nil
	}
}
