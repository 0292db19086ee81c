package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/sagarc03/filewriter"
	"github.com/sagarc03/filewriter/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabase_MigrateAndValidate(t *testing.T) {
	ctx := context.Background()
	tables := filewriter.Tables{Tags: "file_tags"}

	db, err := sqlite.Connect(ctx, ":memory:", tables)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, db.Ping(ctx))
	assert.Error(t, db.Validate(ctx), "validate should fail before migrate")

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Migrate(ctx), "migrate should be idempotent")
	assert.NoError(t, db.Validate(ctx))
}

func TestValidateSchema_Mismatch(t *testing.T) {
	ctx := context.Background()

	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	defer func() { _ = raw.Close() }()

	_, err = raw.ExecContext(ctx, `CREATE TABLE "file_tags" (id TEXT PRIMARY KEY, filename TEXT NOT NULL)`)
	require.NoError(t, err)

	err = sqlite.ValidateSchema(ctx, raw, filewriter.Tables{Tags: "file_tags"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns: created_at, tag")
	assert.Contains(t, err.Error(), "id: expected integer, got text")
}

func TestDropTables(t *testing.T) {
	ctx := context.Background()
	tables := filewriter.Tables{Tags: "file_tags"}

	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	defer func() { _ = raw.Close() }()

	require.NoError(t, sqlite.Migrate(ctx, raw, tables))
	require.NoError(t, sqlite.DropTables(ctx, raw, tables))

	err = sqlite.ValidateSchema(ctx, raw, tables)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestDatabase_Close(t *testing.T) {
	ctx := context.Background()

	db, err := sqlite.Connect(ctx, ":memory:", filewriter.Tables{Tags: "close_test"})
	require.NoError(t, err)

	assert.NoError(t, db.Close())
	assert.Error(t, db.Ping(ctx), "ping should fail after close")
}

func TestConnect_InvalidTable(t *testing.T) {
	db, err := sqlite.Connect(context.Background(), ":memory:", filewriter.Tables{Tags: "x; DROP TABLE y"})
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "connect sqlite")
}

func TestDatabase_GetRepo(t *testing.T) {
	ctx := context.Background()

	db, err := sqlite.Connect(ctx, ":memory:", filewriter.Tables{Tags: "repo_test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))

	repo := db.GetRepo()
	assert.Same(t, repo, db.GetRepo())

	require.NoError(t, repo.Insert(ctx, "1.txt", []string{"a"}))
	tags, err := repo.Tags(ctx, "1.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tags)
}

func TestRepo_InsertAndTags(t *testing.T) {
	ctx := context.Background()

	t.Run("tags in insertion order", func(t *testing.T) {
		repo := setupTestRepo(t)

		require.NoError(t, repo.Insert(ctx, "1.txt", []string{"b", "a", "b"}))

		tags, err := repo.Tags(ctx, "1.txt")
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "b"}, tags)
	})

	t.Run("no tags stores null row", func(t *testing.T) {
		repo := setupTestRepo(t)

		require.NoError(t, repo.Insert(ctx, "1.txt", []string{}))

		tags, err := repo.Tags(ctx, "1.txt")
		require.NoError(t, err)
		assert.Equal(t, []string{}, tags)

		names, err := repo.Filenames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"1.txt"}, names)
	})
}

func TestRepo_Replace(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	require.NoError(t, repo.Insert(ctx, "1.txt", []string{"a", "b"}))
	require.NoError(t, repo.Replace(ctx, "1.txt", []string{"x"}))

	tags, err := repo.Tags(ctx, "1.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, tags)

	require.NoError(t, repo.Replace(ctx, "1.txt", nil))
	tags, err = repo.Tags(ctx, "1.txt")
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	require.NoError(t, repo.Insert(ctx, "1.txt", []string{"a"}))
	require.NoError(t, repo.Insert(ctx, "2.txt", nil))

	require.NoError(t, repo.Delete(ctx, "1.txt"))
	require.NoError(t, repo.Delete(ctx, "missing.txt"))

	names, err := repo.Filenames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2.txt"}, names)

	found, err := repo.Search(ctx, []string{"a"})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRepo_Search(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	require.NoError(t, repo.Insert(ctx, "2.txt", []string{"a", "b"}))
	require.NoError(t, repo.Insert(ctx, "1.txt", []string{"b", "c"}))
	require.NoError(t, repo.Insert(ctx, "3.txt", nil))

	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{name: "single tag", tags: []string{"a"}, want: []string{"2.txt"}},
		{name: "distinct and ordered", tags: []string{"b"}, want: []string{"1.txt", "2.txt"}},
		{name: "any of", tags: []string{"a", "c"}, want: []string{"1.txt", "2.txt"}},
		{name: "no match", tags: []string{"z"}, want: []string{}},
		{name: "no tags", tags: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.tags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepo_ManyTags(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	tags := make([]string, 12000)
	for i := range tags {
		tags[i] = fmt.Sprintf("tag-%05d", i)
	}
	require.NoError(t, repo.Insert(ctx, "big.txt", tags))
	require.NoError(t, repo.Insert(ctx, "small.txt", []string{"tag-11999"}))

	got, err := repo.Tags(ctx, "big.txt")
	require.NoError(t, err)
	assert.Equal(t, tags, got)

	terms := make([]string, 40000)
	for i := range terms {
		terms[i] = fmt.Sprintf("other-%05d", i)
	}
	terms[len(terms)-1] = "tag-11999"

	found, err := repo.Search(ctx, terms)
	require.NoError(t, err)
	assert.Equal(t, []string{"big.txt", "small.txt"}, found)
}

func TestRepo_TagsWithJSONCharacters(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	tags := []string{`quo"te`, `back\slash`, "ünïcode", "[x]"}
	require.NoError(t, repo.Insert(ctx, "1.txt", tags))

	got, err := repo.Tags(ctx, "1.txt")
	require.NoError(t, err)
	assert.Equal(t, tags, got)

	found, err := repo.Search(ctx, []string{`quo"te`})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.txt"}, found)
}
