// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/catalog/internal/platform/constants"
)

/*
CachedRepository decorates a [Repository] with a Redis read-through cache for
name lookups, the hot path of tag resolution.

Description: Only positive lookups are cached. Update and Delete evict the
affected names after storage commits. Redis failures are logged and the
call falls through to the wrapped repository, so the cache never changes
results, only latency.
*/
type CachedRepository struct {
	Repository

	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps inner with a name cache held in client.
func NewCachedRepository(inner Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{Repository: inner, client: client, ttl: ttl, logger: logger}
}

func nameKey(name string) string {
	return constants.RedisPrefixTagName + name
}

func (repository *CachedRepository) FindByName(ctx context.Context, name string) (*Tag, error) {
	raw, err := repository.client.Get(ctx, nameKey(name)).Bytes()
	switch {
	case err == nil:
		var cached Tag
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return &cached, nil
		}
	case !errors.Is(err, redis.Nil):
		repository.logger.Warn("tag_cache_read_failed", slog.String("name", name), slog.Any("error", err))
	}

	tag, err := repository.Repository.FindByName(ctx, name)
	if err != nil || tag == nil {
		return tag, err
	}

	if payload, jsonErr := json.Marshal(tag); jsonErr == nil {
		if setErr := repository.client.Set(ctx, nameKey(name), payload, repository.ttl).Err(); setErr != nil {
			repository.logger.Warn("tag_cache_write_failed", slog.String("name", name), slog.Any("error", setErr))
		}
	}
	return tag, nil
}

func (repository *CachedRepository) Update(ctx context.Context, tag *Tag) error {
	previous, err := repository.Repository.FindByID(ctx, tag.ID)
	if err != nil {
		return err
	}
	if err := repository.Repository.Update(ctx, tag); err != nil {
		return err
	}

	names := []string{tag.Name}
	if previous != nil && previous.Name != tag.Name {
		names = append(names, previous.Name)
	}
	repository.evict(ctx, tag.ID, names...)
	return nil
}

func (repository *CachedRepository) Delete(ctx context.Context, id string) error {
	previous, err := repository.Repository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := repository.Repository.Delete(ctx, id); err != nil {
		return err
	}

	if previous != nil {
		repository.evict(ctx, id, previous.Name)
	}
	return nil
}

// evict drops cached names once storage has committed the change. A lookup
// racing the write may have cached the old row; eviction after the write
// removes it.
func (repository *CachedRepository) evict(ctx context.Context, id string, names ...string) {
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, nameKey(name))
	}

	if err := repository.client.Del(ctx, keys...).Err(); err != nil {
		repository.logger.Warn("tag_cache_evict_failed", slog.String("tag_id", id), slog.Any("error", err))
	}
}
