package questions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/dmitrijs2005/quizweb/internal/dbx"
	"github.com/dmitrijs2005/quizweb/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO questions (seed_key, prompt, options, correct_index) VALUES (?, ?, ?, ?)`,
		q.SeedKey, q.Prompt, models.JoinOptions(q.Options), q.CorrectIndex)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	q.ID = id
	return q, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, q *models.Question) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE questions SET prompt = ?, options = ?, correct_index = ? WHERE id = ?`,
		q.Prompt, models.JoinOptions(q.Options), q.CorrectIndex, q.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	return scanQuestion(r.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = ?`, id))
}

func (r *SQLiteRepository) GetBySeedKey(ctx context.Context, key string) (*models.Question, error) {
	return scanQuestion(r.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE seed_key = ?`, key))
}

func (r *SQLiteRepository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collectIDs(rows)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Question, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collectQuestions(rows)
}
