package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendNone  = "none"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Options selects and configures a backend for Open.
type Options struct {
	Backend string // file (default), none, redis, mongo

	Dir string // file

	Redis RedisOptions
	Mongo MongoOptions
}

// Open creates the cache described by opts.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: directory is required")
		}
		return NewFileCache(opts.Dir)
	case BackendNone:
		return NewNullCache(), nil
	case BackendRedis:
		return NewRedisCache(ctx, opts.Redis)
	case BackendMongo:
		return NewMongoCache(ctx, opts.Mongo)
	}
	return nil, fmt.Errorf("unknown cache backend %q (want file, none, redis or mongo)", opts.Backend)
}
