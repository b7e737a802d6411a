package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/database"
)

// MaxMessageLength is the longest accepted message text, in characters.
const MaxMessageLength = 254

type MessageService struct {
	messages database.MessageRepository
	accounts *AccountService
}

func NewMessageService(messages database.MessageRepository, accounts *AccountService) *MessageService {
	return &MessageService{
		messages: messages,
		accounts: accounts,
	}
}

func validateMessageText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrBlankMessageText
	}

	if utf8.RuneCountInString(text) > MaxMessageLength {
		return ErrMessageTextTooLong
	}

	return nil
}

func (s *MessageService) CreateMessage(ctx context.Context, params database.CreateMessageParams) (database.Message, error) {
	if err := validateMessageText(params.MessageText); err != nil {
		return database.Message{}, err
	}

	_, found, err := s.accounts.GetAccountByID(ctx, params.PostedBy)
	if err != nil {
		return database.Message{}, err
	}
	if !found {
		return database.Message{}, ErrUnknownAccount
	}

	msg, err := s.messages.CreateMessage(ctx, params)
	if err != nil {
		return database.Message{}, fmt.Errorf("create message: %w", err)
	}

	return msg, nil
}

func (s *MessageService) ListMessages(ctx context.Context) ([]database.Message, error) {
	msgs, err := s.messages.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return msgs, nil
}

func (s *MessageService) GetMessageByID(ctx context.Context, messageId int) (database.Message, bool, error) {
	msg, ok, err := s.messages.GetMessageById(ctx, messageId)
	if err != nil {
		return database.Message{}, false, fmt.Errorf("get message: %w", err)
	}

	return msg, ok, nil
}

// DeleteMessage removes the message and returns what was stored.
// A message that does not exist yields found == false and no error.
func (s *MessageService) DeleteMessage(ctx context.Context, messageId int) (msg database.Message, found bool, err error) {
	msg, found, err = s.GetMessageByID(ctx, messageId)
	if err != nil || !found {
		return database.Message{}, false, err
	}

	deleted, err := s.messages.DeleteMessage(ctx, messageId)
	if err != nil {
		return msg, true, fmt.Errorf("delete message: %w", err)
	}
	if !deleted {
		return msg, true, ErrDeleteFailed
	}

	return msg, true, nil
}

// UpdateMessage replaces the text of an existing message. Unlike delete,
// the message must exist.
func (s *MessageService) UpdateMessage(ctx context.Context, messageId int, text string) (database.Message, error) {
	if err := validateMessageText(text); err != nil {
		return database.Message{}, err
	}

	msg, found, err := s.GetMessageByID(ctx, messageId)
	if err != nil {
		return database.Message{}, err
	}
	if !found {
		return database.Message{}, ErrMessageNotFound
	}

	msg.MessageText = text

	updated, err := s.messages.UpdateMessage(ctx, msg)
	if err != nil {
		return database.Message{}, fmt.Errorf("update message: %w", err)
	}
	if !updated {
		return database.Message{}, ErrUpdateFailed
	}

	return msg, nil
}

func (s *MessageService) ListMessagesByAccount(ctx context.Context, accountId int) ([]database.Message, error) {
	msgs, err := s.messages.ListMessagesByAccount(ctx, accountId)
	if err != nil {
		return nil, fmt.Errorf("list messages by account: %w", err)
	}

	return msgs, nil
}
