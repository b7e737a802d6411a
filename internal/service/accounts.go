package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/database"
)

const MinPasswordLength = 4

type AccountService struct {
	repo database.AccountRepository
}

func NewAccountService(repo database.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// Register validates the credentials and stores a new account.
// Rules are checked on the trimmed values; the values are stored as given.
// The existence probe and the insert are separate statements.
func (s *AccountService) Register(ctx context.Context, username, password string) (database.Account, error) {
	if strings.TrimSpace(username) == "" {
		return database.Account{}, ErrBlankUsername
	}

	if utf8.RuneCountInString(strings.TrimSpace(password)) < MinPasswordLength {
		return database.Account{}, ErrPasswordTooShort
	}

	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return database.Account{}, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return database.Account{}, ErrUsernameTaken
	}

	acct, err := s.repo.CreateAccount(ctx, database.CreateAccountParams{
		Username: username,
		Password: password,
	})
	if err != nil {
		return database.Account{}, fmt.Errorf("create account: %w", err)
	}

	return acct, nil
}

// Login returns ok == false when no account matches the credentials.
func (s *AccountService) Login(ctx context.Context, username, password string) (database.Account, bool, error) {
	acct, ok, err := s.repo.GetAccountByCredentials(ctx, username, password)
	if err != nil {
		return database.Account{}, false, fmt.Errorf("login: %w", err)
	}

	return acct, ok, nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, accountId int) (database.Account, bool, error) {
	acct, ok, err := s.repo.GetAccountById(ctx, accountId)
	if err != nil {
		return database.Account{}, false, fmt.Errorf("get account: %w", err)
	}

	return acct, ok, nil
}
