// Package questions stores the quiz question bank.
package questions

import (
	"context"

	"github.com/dmitrijs2005/quizweb/internal/server/models"
)

// Repository persists questions. Lookups return common.ErrorNotFound for a
// missing row; Create returns common.ErrorAlreadyExists for a taken seed key.
type Repository interface {
	Create(ctx context.Context, q *models.Question) (*models.Question, error)
	Update(ctx context.Context, q *models.Question) error
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	GetBySeedKey(ctx context.Context, key string) (*models.Question, error)
	ListIDs(ctx context.Context) ([]int64, error)
	List(ctx context.Context) ([]*models.Question, error)
}
