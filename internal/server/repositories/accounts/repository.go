// Package accounts stores registered users.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/quizweb/internal/server/models"
)

// Repository persists accounts. Create returns common.ErrorAlreadyExists when
// the username is taken; GetByUsername returns common.ErrorNotFound when it
// is not.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
}
