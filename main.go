package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wikiguess/internal/auth"
	"github.com/robalobadob/wikiguess/internal/config"
	"github.com/robalobadob/wikiguess/internal/daily"
	"github.com/robalobadob/wikiguess/internal/httpserver"
	"github.com/robalobadob/wikiguess/internal/source"
	"github.com/robalobadob/wikiguess/internal/storage"
	"github.com/robalobadob/wikiguess/internal/store"
)

// sessionIdle is how long an untouched round stays in memory.
const sessionIdle = 6 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := storage.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", cfg.Database.DSN).Msg("open database")
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	cat, err := source.LoadCatalogue(cfg.Source.ArticlesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load article catalogue")
	}

	users := storage.NewUsers(db)
	sessions := store.NewMemoryStore()
	srv := httpserver.New(httpserver.Deps{
		Config:   cfg,
		Sessions: sessions,
		Users:    users,
		Rounds:   storage.NewRounds(db),
		Daily:    daily.NewStore(db),
		Auth: auth.NewService(auth.Config{
			Secret:     cfg.Auth.JWTSecret,
			TTL:        cfg.Auth.TokenTTL(),
			CookieName: cfg.Auth.CookieName,
			Secure:     cfg.Auth.Production(),
		}, users),
		Catalogue: cat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweep(ctx, sessions)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().
		Str("addr", cfg.Server.Addr()).
		Int("articles", cat.Len()).
		Strs("allowedHosts", cfg.Source.AllowedHosts).
		Msg("starting wikiguess")
	if err := srv.Start(cfg.Server.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// sweep drops idle sessions until ctx is done.
func sweep(ctx context.Context, m *store.Memory) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := m.Sweep(now.Add(-sessionIdle)); n > 0 {
				log.Info().Int("sessions", n).Msg("swept idle rounds")
			}
		}
	}
}
