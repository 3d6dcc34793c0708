// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/catalog/data"
)

func TestMigrationURL(t *testing.T) {
	tests := []struct {
		in         string
		wantScheme string
		wantHost   string
		wantTable  string
		wantQuery  map[string]string
	}{
		{in: "postgres://u:p@db:5432/catalog", wantScheme: "pgx5", wantHost: "db:5432", wantTable: VersionTable},
		{
			in:         "postgresql://u:p@db/catalog?sslmode=disable",
			wantScheme: "pgx5", wantHost: "db", wantTable: VersionTable,
			wantQuery: map[string]string{"sslmode": "disable"},
		},
		{in: "pgx5://u:p@db/catalog", wantScheme: "pgx5", wantHost: "db", wantTable: VersionTable},
		{in: "postgres://u:p@db/catalog?x-migrations-table=custom", wantScheme: "pgx5", wantHost: "db", wantTable: "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := migrationURL(tt.in)
			require.NoError(t, err)

			parsed, err := url.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScheme, parsed.Scheme)
			assert.Equal(t, tt.wantHost, parsed.Host)
			assert.Equal(t, "/catalog", parsed.Path)
			assert.Equal(t, "u:p", parsed.User.String())
			assert.Equal(t, tt.wantTable, parsed.Query().Get("x-migrations-table"))
			for key, value := range tt.wantQuery {
				assert.Equal(t, value, parsed.Query().Get(key))
			}
		})
	}
}

func TestMigrationURL_RejectsKeywordDSN(t *testing.T) {
	for _, dsn := range []string{"host=db user=u dbname=catalog", "mysql://u@db/catalog"} {
		_, err := migrationURL(dsn)
		assert.ErrorIs(t, err, ErrUnsupportedDSN, dsn)
	}
}

func TestOpenSource_EmbeddedMigrations(t *testing.T) {
	src, err := openSource(data.Migrations)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, identifier, err := src.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "init_catalog", identifier)

	body, err := io.ReadAll(up)
	require.NoError(t, err)
	assert.Contains(t, string(body), "catalog")

	down, _, err := src.ReadDown(first)
	require.NoError(t, err)
	_ = down.Close()
}

func TestOpenSource_MissingDirectory(t *testing.T) {
	_, err := openSource(fstest.MapFS{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMigrateLogger_VerboseFollowsLevel(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}))
	loud := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	assert.False(t, newMigrateLogger(quiet).Verbose())
	assert.True(t, newMigrateLogger(loud).Verbose())
}
