package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/dmitrijs2005/quizweb/internal/server/bank"
	"github.com/dmitrijs2005/quizweb/internal/server/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuestionService(t *testing.T) *QuestionService {
	t.Helper()
	db, m := openStore(t)
	return NewQuestionService(db, m)
}

func TestSeed_InsertsThenIsIdempotent(t *testing.T) {
	s := newQuestionService(t)
	ctx := context.Background()

	report, err := s.Seed(ctx, bank.Builtin())
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Inserted: 7}, report)

	report, err = s.Seed(ctx, bank.Builtin())
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Unchanged: 7}, report)

	ids, err := s.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 7)
}

func TestSeed_UpdatesChangedContentInPlace(t *testing.T) {
	s := newQuestionService(t)
	ctx := context.Background()

	_, err := s.Seed(ctx, bank.Builtin())
	require.NoError(t, err)
	before, err := s.List(ctx)
	require.NoError(t, err)

	changed := bank.Builtin()
	changed[1].Prompt = "Which planet looks red?"
	changed[1].Options[3] = "Neptune"

	report, err := s.Seed(ctx, changed)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Updated: 1, Unchanged: 6}, report)
	assert.Equal(t, 7, report.Total())

	after, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	assert.Equal(t, before[1].ID, after[1].ID)
	assert.Equal(t, "Which planet looks red?", after[1].Prompt)
	assert.Equal(t, "Neptune", after[1].Options[3])

	if diff := cmp.Diff(before[0], after[0]); diff != "" {
		t.Fatalf("untouched question changed (-before +after):\n%s", diff)
	}
}

func TestSeed_WhitespaceInOptionsIsNotAChange(t *testing.T) {
	s := newQuestionService(t)
	ctx := context.Background()

	padded := []*models.Question{{
		SeedKey: "k", Prompt: "P", Options: []string{" a", "b ", "c", "d"}, CorrectIndex: 1,
	}}
	_, err := s.Seed(ctx, padded)
	require.NoError(t, err)

	report, err := s.Seed(ctx, padded)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Unchanged: 1}, report)
}

func TestSeed_InvalidQuestionWritesNothing(t *testing.T) {
	s := newQuestionService(t)
	ctx := context.Background()

	qs := bank.Builtin()
	qs[3].CorrectIndex = 5

	_, err := s.Seed(ctx, qs)
	require.ErrorIs(t, err, common.ErrInvalidQuestion)

	ids, err := s.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSeed_DuplicateKeyRejected(t *testing.T) {
	s := newQuestionService(t)

	qs := bank.Builtin()
	qs[2].SeedKey = qs[0].SeedKey

	_, err := s.Seed(context.Background(), qs)
	require.ErrorIs(t, err, common.ErrInvalidQuestion)
}

func TestGet(t *testing.T) {
	s := newQuestionService(t)
	ctx := context.Background()

	_, err := s.Seed(ctx, bank.Builtin())
	require.NoError(t, err)
	ids, err := s.ListIDs(ctx)
	require.NoError(t, err)

	q, err := s.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "capital-of-france", q.SeedKey)
	assert.Equal(t, "Paris", q.CorrectOption())

	_, err = s.Get(ctx, 4242)
	require.ErrorIs(t, err, common.ErrQuestionNotFound)
}
