// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/catalog/internal/core/tag"
	"github.com/taibuivan/catalog/internal/platform/constants"
)

// interleavingRepository runs during right before each storage write, standing
// in for a request that reads the tag while the write is in flight.
type interleavingRepository struct {
	*countingRepository
	during func()
}

func (repository *interleavingRepository) Update(ctx context.Context, t *tag.Tag) error {
	if repository.during != nil {
		repository.during()
	}
	return repository.countingRepository.Update(ctx, t)
}

func (repository *interleavingRepository) Delete(ctx context.Context, id string) error {
	if repository.during != nil {
		repository.during()
	}
	return repository.countingRepository.Delete(ctx, id)
}

type cacheFixture struct {
	server *miniredis.Miniredis
	inner  *interleavingRepository
	cached *tag.CachedRepository
}

func newCacheFixture(t *testing.T) *cacheFixture {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	inner := &interleavingRepository{countingRepository: newCounting()}
	return &cacheFixture{
		server: server,
		inner:  inner,
		cached: tag.NewCachedRepository(inner, client, time.Minute, discardLogger()),
	}
}

func TestCachedRepository_ReadThrough(t *testing.T) {
	fixture := newCacheFixture(t)
	ctx := context.Background()

	require.NoError(t, fixture.cached.Create(ctx, &tag.Tag{ID: "01900000-0000-7000-8000-0000000000c1", Name: "sale"}))

	first, err := fixture.cached.FindByName(ctx, "sale")
	require.NoError(t, err)
	second, err := fixture.cached.FindByName(ctx, "sale")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, fixture.inner.finds)
	assert.True(t, fixture.server.Exists(constants.RedisPrefixTagName+"sale"))

	missing, err := fixture.cached.FindByName(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.False(t, fixture.server.Exists(constants.RedisPrefixTagName+"absent"))
}

func TestCachedRepository_DeleteEvictsAfterWrite(t *testing.T) {
	fixture := newCacheFixture(t)
	ctx := context.Background()
	service := tag.NewService(fixture.cached, discardLogger())
	resolver := tag.NewResolver(fixture.cached, discardLogger())

	deleted, err := service.CreateTag(ctx, tag.Input{Name: "sale"})
	require.NoError(t, err)

	fixture.inner.during = func() {
		_, err := fixture.cached.FindByName(ctx, "sale")
		require.NoError(t, err)
	}
	require.NoError(t, service.DeleteTag(ctx, deleted.ID))
	fixture.inner.during = nil

	assert.False(t, fixture.server.Exists(constants.RedisPrefixTagName+"sale"))

	ids, err := resolver.ResolveIDs(ctx, []string{"sale"})
	require.NoError(t, err)
	assert.NotEqual(t, deleted.ID, ids[0])

	recreated, err := fixture.inner.FindByID(ctx, ids[0])
	require.NoError(t, err)
	require.NotNil(t, recreated)
	assert.Equal(t, "sale", recreated.Name)
}

func TestCachedRepository_RenameEvictsAfterWrite(t *testing.T) {
	fixture := newCacheFixture(t)
	ctx := context.Background()
	service := tag.NewService(fixture.cached, discardLogger())
	resolver := tag.NewResolver(fixture.cached, discardLogger())

	renamed, err := service.CreateTag(ctx, tag.Input{Name: "sale"})
	require.NoError(t, err)

	fixture.inner.during = func() {
		_, err := fixture.cached.FindByName(ctx, "sale")
		require.NoError(t, err)
	}
	newName := "promo"
	_, err = service.UpdateTag(ctx, renamed.ID, tag.Patch{Name: &newName})
	require.NoError(t, err)
	fixture.inner.during = nil

	ids, err := resolver.ResolveIDs(ctx, []string{"sale", "promo"})
	require.NoError(t, err)
	assert.NotEqual(t, renamed.ID, ids[0])
	assert.Equal(t, renamed.ID, ids[1])
}

func TestCachedRepository_RedisFailureFallsThrough(t *testing.T) {
	fixture := newCacheFixture(t)
	ctx := context.Background()

	created := &tag.Tag{ID: "01900000-0000-7000-8000-0000000000c2", Name: "design"}
	require.NoError(t, fixture.cached.Create(ctx, created))

	fixture.server.SetError("LOADING Redis is loading the dataset in memory")

	found, err := fixture.cached.FindByName(ctx, "design")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	_, err = fixture.cached.FindByName(ctx, "design")
	require.NoError(t, err)
	assert.Equal(t, 2, fixture.inner.finds)

	created.Name = "ui-design"
	require.NoError(t, fixture.cached.Update(ctx, created))
	require.NoError(t, fixture.cached.Delete(ctx, created.ID))

	fixture.server.SetError("")
	gone, err := fixture.cached.FindByName(ctx, "ui-design")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
