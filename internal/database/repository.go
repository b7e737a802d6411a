package database

import "context"

// Lookups return ok == false with a nil error when the row does not exist.

type AccountRepository interface {
	CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	GetAccountByCredentials(ctx context.Context, username, password string) (Account, bool, error)
	GetAccountById(ctx context.Context, accountId int) (Account, bool, error)
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, params CreateMessageParams) (Message, error)
	ListMessages(ctx context.Context) ([]Message, error)
	GetMessageById(ctx context.Context, messageId int) (Message, bool, error)
	DeleteMessage(ctx context.Context, messageId int) (bool, error)
	UpdateMessage(ctx context.Context, msg Message) (bool, error)
	ListMessagesByAccount(ctx context.Context, accountId int) ([]Message, error)
}

type SocialMediaRepository interface {
	AccountRepository
	MessageRepository
	Ping(ctx context.Context) error
}
