// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/catalog/internal/core/content"
	"github.com/taibuivan/catalog/internal/core/tag"
	"github.com/taibuivan/catalog/internal/platform/apperr"
	"github.com/taibuivan/catalog/pkg/pointer"
)

type fixture struct {
	repo     *content.MemoryRepository
	tags     *tag.MemoryRepository
	resolver *tag.Resolver
}

func newFixture() *fixture {
	tags := tag.NewMemoryRepository()
	return &fixture{
		repo:     content.NewMemoryRepository(),
		tags:     tags,
		resolver: tag.NewResolver(tags, discardLogger()),
	}
}

func (f *fixture) manager(kind content.Kind) *content.Manager {
	return f.managerOver(kind, f.repo)
}

func (f *fixture) managerOver(kind content.Kind, repo content.Repository) *content.Manager {
	return content.NewManager(kind, repo, f.resolver, content.NewAssigner(repo, nil), discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func caseInput(title string, tags ...string) content.Input {
	return content.Input{Title: title, Description: "d", ImgSrc: "/uploads/x.webp", Tags: tags}
}

func requireAppErr(t *testing.T, err error, status int) *apperr.AppError {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	require.Equal(t, status, appErr.HTTPStatus)
	return appErr
}

func TestManager_SlugSequence(t *testing.T) {
	manager := newFixture().manager(content.Case)
	ctx := context.Background()

	first, err := manager.Create(ctx, caseInput("Hello World!"))
	require.NoError(t, err)
	second, err := manager.Create(ctx, caseInput("Hello World!"))
	require.NoError(t, err)

	assert.Equal(t, "hello-world", first.URLText)
	assert.Equal(t, "hello-world-1", second.URLText)

	t.Run("equivalent_title_keeps_slug", func(t *testing.T) {
		updated, err := manager.Update(ctx, first.ID, content.Patch{Title: pointer.To("Hello  World!!")})
		require.NoError(t, err)
		assert.Equal(t, "hello-world", updated.URLText)
		assert.Equal(t, "Hello  World!!", updated.Title)
	})

	t.Run("unchanged_title_never_touches_slug", func(t *testing.T) {
		updated, err := manager.Update(ctx, second.ID, content.Patch{Title: pointer.To("Hello World!")})
		require.NoError(t, err)
		assert.Equal(t, "hello-world-1", updated.URLText)
	})
}

func TestManager_SlugNamespacePerKind(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c, err := f.manager(content.Case).Create(ctx, caseInput("Launch"))
	require.NoError(t, err)

	input := caseInput("Launch")
	input.Date = content.NewDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	n, err := f.manager(content.News).Create(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, "launch", c.URLText)
	assert.Equal(t, "launch", n.URLText)
}

func TestManager_CreateValidation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		kind   content.Kind
		input  content.Input
		fields []string
	}{
		{"all_missing_case", content.Case, content.Input{}, []string{content.FieldTitle, content.FieldDescription, content.FieldImgSrc}},
		{"banner_needs_date", content.Banner, caseInput("B"), []string{content.FieldDate}},
		{"news_zero_date", content.News, content.Input{Title: "N", Description: "d", ImgSrc: "i", Date: &content.Date{}}, []string{content.FieldDate}},
		{"shop_needs_price", content.Shop, caseInput("S"), []string{content.FieldPrice}},
		{"shop_negative_price", content.Shop, content.Input{Title: "S", Description: "d", ImgSrc: "i", Price: pointer.To(decimal.NewFromInt(-1))}, []string{content.FieldPrice}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.manager(tt.kind).Create(context.Background(), tt.input)
			appErr := requireAppErr(t, err, http.StatusBadRequest)

			fields := make([]string, 0, len(appErr.Details))
			for _, detail := range appErr.Details {
				fields = append(fields, detail.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestManager_Tags(t *testing.T) {
	f := newFixture()
	manager := f.manager(content.Case)
	ctx := context.Background()

	created, err := manager.Create(ctx, caseInput("Tagged", "go", "web", "go"))
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "web"}, created.Tags)

	t.Run("absent_tags_untouched", func(t *testing.T) {
		updated, err := manager.Update(ctx, created.ID, content.Patch{Description: pointer.To("new")})
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "web"}, updated.Tags)
		assert.Equal(t, "new", updated.Description)
	})

	t.Run("present_tags_replace", func(t *testing.T) {
		updated, err := manager.Update(ctx, created.ID, content.Patch{Tags: &[]string{"mobile"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"mobile"}, updated.Tags)
	})

	t.Run("empty_tags_clear", func(t *testing.T) {
		updated, err := manager.Update(ctx, created.ID, content.Patch{Tags: &[]string{}})
		require.NoError(t, err)
		assert.Empty(t, updated.Tags)

		fetched, err := manager.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Empty(t, fetched.Tags)
	})
}

func TestManager_DeleteKeepsTags(t *testing.T) {
	f := newFixture()
	manager := f.manager(content.Case)
	ctx := context.Background()

	created, err := manager.Create(ctx, caseInput("Doomed", "keep-me"))
	require.NoError(t, err)
	stored, err := f.repo.FindByID(ctx, content.Case.Name, created.ID)
	require.NoError(t, err)

	require.NoError(t, manager.Delete(ctx, created.ID))

	items, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	names, err := f.resolver.ResolveNames(ctx, stored.TagIDs)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep-me"}, names)

	requireAppErr(t, manager.Delete(ctx, created.ID), http.StatusNotFound)
}

func TestManager_NotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.manager(content.Case).Get(ctx, "nope")
	appErr := requireAppErr(t, err, http.StatusNotFound)
	assert.Equal(t, "Case not found", appErr.Message)

	// An id of another kind is invisible.
	created, err := f.manager(content.Case).Create(ctx, caseInput("Mine"))
	require.NoError(t, err)
	_, err = f.manager(content.Shop).Get(ctx, created.ID)
	requireAppErr(t, err, http.StatusNotFound)

	_, err = f.manager(content.Shop).Update(ctx, created.ID, content.Patch{})
	requireAppErr(t, err, http.StatusNotFound)
}

func TestManager_UpdateRejectsEmptyRequired(t *testing.T) {
	f := newFixture()
	manager := f.manager(content.Case)
	ctx := context.Background()

	created, err := manager.Create(ctx, caseInput("Keep"))
	require.NoError(t, err)

	_, err = manager.Update(ctx, created.ID, content.Patch{Title: pointer.To(""), ImgSrc: pointer.To(" ")})
	appErr := requireAppErr(t, err, http.StatusBadRequest)
	assert.Len(t, appErr.Details, 2)

	fetched, err := manager.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep", fetched.URLText)
}

func TestManager_ListNewestFirst(t *testing.T) {
	manager := newFixture().manager(content.Case)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := manager.Create(ctx, caseInput(title))
		require.NoError(t, err)
	}

	items, err := manager.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "three", items[0].Title)
	assert.Equal(t, "one", items[2].Title)
}

// racingRepository lets a competitor take the slug between the check and the insert.
type racingRepository struct {
	*content.MemoryRepository
	races int
}

func (repository *racingRepository) Create(ctx context.Context, item *content.Item) error {
	if repository.races > 0 {
		repository.races--
		competitor := &content.Item{ID: item.ID + "-rival-" + strconv.Itoa(repository.races), Kind: item.Kind, URLText: item.URLText}
		if err := repository.MemoryRepository.Create(ctx, competitor); err != nil {
			return err
		}
	}
	return repository.MemoryRepository.Create(ctx, item)
}

func TestManager_CreateRetriesLostSlugRace(t *testing.T) {
	f := newFixture()
	repo := &racingRepository{MemoryRepository: content.NewMemoryRepository(), races: 2}
	manager := f.managerOver(content.Case, repo)

	created, err := manager.Create(context.Background(), caseInput("Contested"))
	require.NoError(t, err)
	assert.Equal(t, "contested-2", created.URLText)
}

func TestManager_CreateGivesUpAfterRetries(t *testing.T) {
	f := newFixture()
	repo := &racingRepository{MemoryRepository: content.NewMemoryRepository(), races: 100}
	manager := f.managerOver(content.Case, repo)

	_, err := manager.Create(context.Background(), caseInput("Hopeless"))
	requireAppErr(t, err, http.StatusConflict)
}

func TestManager_ShopPrice(t *testing.T) {
	manager := newFixture().manager(content.Shop)
	ctx := context.Background()

	input := caseInput("Poster")
	input.Price = pointer.To(decimal.NewFromInt(50000))
	created, err := manager.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "50000", created.Price.String())
	assert.Nil(t, created.Date)

	updated, err := manager.Update(ctx, created.ID, content.Patch{Price: pointer.To(decimal.RequireFromString("19.90"))})
	require.NoError(t, err)
	assert.Equal(t, "19.9", updated.Price.String())
}
