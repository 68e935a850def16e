package questions

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/dmitrijs2005/quizweb/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "questions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE questions (
  id            INTEGER PRIMARY KEY AUTOINCREMENT,
  seed_key      TEXT NOT NULL UNIQUE,
  prompt        TEXT NOT NULL,
  options       TEXT NOT NULL,
  correct_index INTEGER NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func sample(key string) *models.Question {
	return &models.Question{
		SeedKey:      key,
		Prompt:       "Which planet is known as the Red Planet?",
		Options:      []string{"Venus", "Mars", "Jupiter", "Saturn"},
		CorrectIndex: 2,
	}
}

func TestSQLiteCreateAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	created, err := r.Create(ctx, sample("red-planet"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byID, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byKey, err := r.GetBySeedKey(ctx, "red-planet")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byKey.ID)
	assert.Equal(t, []string{"Venus", "Mars", "Jupiter", "Saturn"}, byKey.Options)
}

func TestSQLiteCreate_DuplicateKey(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.Create(ctx, sample("k"))
	require.NoError(t, err)

	_, err = r.Create(ctx, sample("k"))
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestSQLiteGet_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.GetByID(ctx, 99)
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = r.GetBySeedKey(ctx, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteUpdate(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	q, err := r.Create(ctx, sample("k"))
	require.NoError(t, err)

	q.Prompt = "Which planet is red?"
	q.CorrectIndex = 2
	require.NoError(t, r.Update(ctx, q))

	got, err := r.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Which planet is red?", got.Prompt)

	require.ErrorIs(t, r.Update(ctx, &models.Question{ID: 1000, Options: q.Options}), common.ErrorNotFound)
}

func TestSQLiteListAndListIDs(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	ids, err := r.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	a, err := r.Create(ctx, sample("a"))
	require.NoError(t, err)
	b, err := r.Create(ctx, sample("b"))
	require.NoError(t, err)

	ids, err = r.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, b.ID}, ids)

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].SeedKey)
	assert.Equal(t, "b", all[1].SeedKey)
}
