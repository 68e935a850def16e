package questions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/dmitrijs2005/quizweb/internal/dbx"
	"github.com/dmitrijs2005/quizweb/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	query :=
		`INSERT INTO questions (seed_key, prompt, options, correct_index)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query, q.SeedKey, q.Prompt, models.JoinOptions(q.Options), q.CorrectIndex).Scan(&q.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}

func (r *PostgresRepository) Update(ctx context.Context, q *models.Question) error {
	query :=
		`UPDATE questions SET prompt = $1, options = $2, correct_index = $3
		 WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, q.Prompt, models.JoinOptions(q.Options), q.CorrectIndex, q.ID)
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

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	return scanQuestion(r.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id))
}

func (r *PostgresRepository) GetBySeedKey(ctx context.Context, key string) (*models.Question, error) {
	return scanQuestion(r.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE seed_key = $1`, key))
}

func (r *PostgresRepository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collectIDs(rows)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Question, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collectQuestions(rows)
}
