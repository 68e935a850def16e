package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/dmitrijs2005/quizweb/internal/dbx"
	"github.com/dmitrijs2005/quizweb/internal/server/models"
	"github.com/dmitrijs2005/quizweb/internal/server/repositories/repomanager"
)

// SeedReport counts what Seed did with each question of the bank.
type SeedReport struct {
	Inserted  int
	Updated   int
	Unchanged int
}

// Total is the number of questions the report covers.
func (r SeedReport) Total() int {
	return r.Inserted + r.Updated + r.Unchanged
}

// QuestionService reads the question bank and seeds it.
type QuestionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewQuestionService(db *sql.DB, m repomanager.RepositoryManager) *QuestionService {
	return &QuestionService{db: db, repomanager: m}
}

// Seed upserts bank by seed key inside a single transaction. Every question
// is validated first; an invalid one aborts the seed before any write.
// Duplicate keys within bank are rejected as invalid.
func (s *QuestionService) Seed(ctx context.Context, bank []*models.Question) (SeedReport, error) {
	seen := make(map[string]struct{}, len(bank))
	for _, q := range bank {
		if err := q.Validate(); err != nil {
			return SeedReport{}, err
		}
		if _, dup := seen[q.SeedKey]; dup {
			return SeedReport{}, fmt.Errorf("%w: duplicate seed key %q", common.ErrInvalidQuestion, q.SeedKey)
		}
		seen[q.SeedKey] = struct{}{}
	}

	var report SeedReport
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Questions(tx)

		for _, q := range bank {
			row := trimmed(q)

			existing, err := repo.GetBySeedKey(ctx, q.SeedKey)
			switch {
			case errors.Is(err, common.ErrorNotFound):
				if _, err := repo.Create(ctx, row); err != nil {
					return fmt.Errorf("error inserting question %q: %w", q.SeedKey, err)
				}
				report.Inserted++
			case err != nil:
				return fmt.Errorf("error looking up question %q: %w", q.SeedKey, err)
			case existing.SameContent(row):
				report.Unchanged++
			default:
				row.ID = existing.ID
				if err := repo.Update(ctx, row); err != nil {
					return fmt.Errorf("error updating question %q: %w", q.SeedKey, err)
				}
				report.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return SeedReport{}, err
	}
	return report, nil
}

// trimmed copies q with the option text normalized the way storage reads it
// back, so an unchanged question compares equal on the next seed.
func trimmed(q *models.Question) *models.Question {
	row := *q
	row.ID = 0
	row.Prompt = strings.TrimSpace(q.Prompt)
	row.Options = models.SplitOptions(models.JoinOptions(q.Options))
	return &row
}

// ListIDs returns the IDs of every stored question.
func (s *QuestionService) ListIDs(ctx context.Context) ([]int64, error) {
	return s.repomanager.Questions(s.db).ListIDs(ctx)
}

// List returns every stored question ordered by ID.
func (s *QuestionService) List(ctx context.Context) ([]*models.Question, error) {
	return s.repomanager.Questions(s.db).List(ctx)
}

// Get returns one question or common.ErrQuestionNotFound.
func (s *QuestionService) Get(ctx context.Context, id int64) (*models.Question, error) {
	q, err := s.repomanager.Questions(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}
