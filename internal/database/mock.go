package database

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSocialMediaRepository struct {
	mock.Mock
}

func (m *MockSocialMediaRepository) Ping(ctx context.Context) error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockSocialMediaRepository) CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error) {
	args := m.Called(params)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockSocialMediaRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}
func (m *MockSocialMediaRepository) GetAccountByCredentials(ctx context.Context, username, password string) (Account, bool, error) {
	args := m.Called(username, password)
	return args.Get(0).(Account), args.Bool(1), args.Error(2)
}
func (m *MockSocialMediaRepository) GetAccountById(ctx context.Context, accountId int) (Account, bool, error) {
	args := m.Called(accountId)
	return args.Get(0).(Account), args.Bool(1), args.Error(2)
}
func (m *MockSocialMediaRepository) CreateMessage(ctx context.Context, params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockSocialMediaRepository) ListMessages(ctx context.Context) ([]Message, error) {
	args := m.Called()
	if msgs, ok := args.Get(0).([]Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockSocialMediaRepository) GetMessageById(ctx context.Context, messageId int) (Message, bool, error) {
	args := m.Called(messageId)
	return args.Get(0).(Message), args.Bool(1), args.Error(2)
}
func (m *MockSocialMediaRepository) DeleteMessage(ctx context.Context, messageId int) (bool, error) {
	args := m.Called(messageId)
	return args.Bool(0), args.Error(1)
}
func (m *MockSocialMediaRepository) UpdateMessage(ctx context.Context, msg Message) (bool, error) {
	args := m.Called(msg)
	return args.Bool(0), args.Error(1)
}
func (m *MockSocialMediaRepository) ListMessagesByAccount(ctx context.Context, accountId int) ([]Message, error) {
	args := m.Called(accountId)
	if msgs, ok := args.Get(0).([]Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}
