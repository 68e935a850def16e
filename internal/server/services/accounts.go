// Package services contains server-side business logic on top of the
// repositories: account registration and login, and question bank seeding.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/dmitrijs2005/quizweb/internal/cryptox"
	"github.com/dmitrijs2005/quizweb/internal/server/models"
	"github.com/dmitrijs2005/quizweb/internal/server/repositories/repomanager"
)

// AccountService registers accounts and checks credentials.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *cryptox.Hasher
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, hasher *cryptox.Hasher) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
	}
}

// Register stores a new account with a bcrypt hash of password.
// It returns common.ErrDuplicateUsername when the name is taken and
// common.ErrInvalidCredentials for an empty name or password, and
// common.ErrPasswordTooLong past bcrypt's input limit.
func (s *AccountService) Register(ctx context.Context, username, password string) (*models.Account, error) {
	username, err := normalize(username, password)
	if err != nil {
		return nil, err
	}
	if len(password) > cryptox.MaxPasswordBytes {
		return nil, common.ErrPasswordTooLong
	}

	repo := s.repomanager.Accounts(s.db)

	_, err = repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, common.ErrDuplicateUsername
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	acc, err := repo.Create(ctx, &models.Account{UserName: username, PasswordHash: hash})
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	return acc, nil
}

// Login returns the account when password verifies against its stored hash.
// Failures are common.ErrUnknownUser or common.ErrBadPassword.
func (s *AccountService) Login(ctx context.Context, username, password string) (*models.Account, error) {
	username, err := normalize(username, password)
	if err != nil {
		return nil, err
	}

	acc, err := s.repomanager.Accounts(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownUser
		}
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	ok, err := s.hasher.Verify(acc.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("account %q: %w", acc.UserName, err)
	}
	if !ok {
		return nil, common.ErrBadPassword
	}
	return acc, nil
}

func normalize(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", common.ErrInvalidCredentials
	}
	return username, nil
}
