package history

import (
	"context"

	historyfile "github.com/askbridge/askbridge/internal/history/file"
	historyredis "github.com/askbridge/askbridge/internal/history/redis"
	"github.com/askbridge/askbridge/internal/redis"
	"github.com/rs/zerolog"
)

// Options selects the history backend. Redis is preferred when an address
// is configured and reachable; otherwise history falls back to FilePath.
type Options struct {
	RedisAddr     string
	RedisPassword string
	FilePath      string
}

// Connect probes Redis once at startup and settles on a backend for the
// life of the process. It never fails over later; a Redis outage after
// startup surfaces as errors from the store.
func Connect(ctx context.Context, opts Options, logger *zerolog.Logger) (Store, error) {
	if opts.RedisAddr != "" {
		client, err := redis.ConnectRedis(ctx, opts.RedisAddr, opts.RedisPassword, 1)
		if err == nil {
			logger.Info().Str("addr", opts.RedisAddr).Msg("history backed by Redis")
			return historyredis.NewStore(client, logger), nil
		}
		logger.Warn().Err(err).Msg("Redis unreachable, falling back to file history")
	}

	store, err := historyfile.NewStore(opts.FilePath, logger)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("path", opts.FilePath).Msg("history backed by JSON file")
	return store, nil
}
