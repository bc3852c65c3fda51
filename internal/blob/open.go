package blob

import (
	"github.com/redis/go-redis/v9"

	"bookswap/internal/config"
	"bookswap/internal/db"
)

// Open returns the backend selected by cfg.StoreBackend. The Redis backend shares client;
// SQL backends connect through internal/db and migrate the blobs table.
func Open(cfg *config.Config, client *redis.Client) (Store, error) {
	if cfg.StoreBackend == config.BackendRedis {
		return NewRedis(client), nil
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	store := NewGorm(gormDB)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}
