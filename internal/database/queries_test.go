package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var messageColumns = []string{"message_id", "posted_by", "message_text", "time_posted_epoch"}

func newMockRepo(t *testing.T) (*PgSocialMediaRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "sqlmock new")
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "expected all sql expectations to be met")
		db.Close()
	})

	return NewPgSocialMediaRepositoryFromDB(db), mock
}

func q(query string) string {
	return regexp.QuoteMeta(query)
}

func TestCreateAccount(t *testing.T) {
	t.Run("returns account with generated id", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(insertAccountQuery)).
			WithArgs("alice", "secret").
			WillReturnRows(sqlmock.NewRows([]string{"account_id"}).AddRow(7))

		acct, err := repo.CreateAccount(context.Background(), CreateAccountParams{Username: "alice", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, Account{Id: 7, Username: "alice", Password: "secret"}, acct)
	})

	t.Run("fails without generated key", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(insertAccountQuery)).
			WithArgs("alice", "secret").
			WillReturnRows(sqlmock.NewRows([]string{"account_id"}))

		_, err := repo.CreateAccount(context.Background(), CreateAccountParams{Username: "alice", Password: "secret"})
		assert.ErrorIs(t, err, ErrNoGeneratedKey)

		var storageErr *StorageError
		assert.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "insert account", storageErr.Op)
	})

	t.Run("wraps driver error", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		dbErr := errors.New("duplicate key")
		mock.ExpectQuery(q(insertAccountQuery)).
			WithArgs("alice", "secret").
			WillReturnError(dbErr)

		_, err := repo.CreateAccount(context.Background(), CreateAccountParams{Username: "alice", Password: "secret"})
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestUsernameExists(t *testing.T) {
	tcases := []struct {
		name   string
		exists bool
		err    error
	}{
		{name: "username exists", exists: true},
		{name: "username is free", exists: false},
		{name: "query failure is propagated", err: errors.New("connection reset")},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			exp := mock.ExpectQuery(q(usernameExistsQuery)).WithArgs("bob")
			if tc.err != nil {
				exp.WillReturnError(tc.err)
			} else {
				exp.WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tc.exists))
			}

			exists, err := repo.UsernameExists(context.Background(), "bob")
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				assert.False(t, exists, "expected failed probe not to report existence")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.exists, exists)
		})
	}
}

func TestGetAccountByCredentials(t *testing.T) {
	accountRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"account_id", "username", "password"}).AddRow(3, "carol", "pass1234")
	}

	t.Run("matching password", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(accountByUsernameQuery)).WithArgs("carol").WillReturnRows(accountRows())

		acct, ok, err := repo.GetAccountByCredentials(context.Background(), "carol", "pass1234")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, Account{Id: 3, Username: "carol", Password: "pass1234"}, acct)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(accountByUsernameQuery)).WithArgs("carol").WillReturnRows(accountRows())

		acct, ok, err := repo.GetAccountByCredentials(context.Background(), "carol", "wrong")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, Account{}, acct)
	})

	t.Run("unknown username", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(accountByUsernameQuery)).
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows([]string{"account_id", "username", "password"}))

		_, ok, err := repo.GetAccountByCredentials(context.Background(), "nobody", "pass1234")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("query failure", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(accountByUsernameQuery)).WithArgs("carol").WillReturnError(errors.New("db down"))

		_, ok, err := repo.GetAccountByCredentials(context.Background(), "carol", "pass1234")
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestGetAccountById(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(accountByIdQuery)).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"account_id", "username", "password"}).AddRow(3, "carol", "pass1234"))

		acct, ok, err := repo.GetAccountById(context.Background(), 3)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 3, acct.Id)
	})

	t.Run("absent", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(accountByIdQuery)).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows([]string{"account_id", "username", "password"}))

		_, ok, err := repo.GetAccountById(context.Background(), 99)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCreateMessage(t *testing.T) {
	params := CreateMessageParams{PostedBy: 1, MessageText: "hello", TimePostedEpoch: 1669947792}

	t.Run("returns message with generated id", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(insertMessageQuery)).
			WithArgs(1, "hello", int64(1669947792)).
			WillReturnRows(sqlmock.NewRows([]string{"message_id"}).AddRow(11))

		msg, err := repo.CreateMessage(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, Message{Id: 11, PostedBy: 1, MessageText: "hello", TimePostedEpoch: 1669947792}, msg)
	})

	t.Run("fails without generated key", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(insertMessageQuery)).
			WithArgs(1, "hello", int64(1669947792)).
			WillReturnRows(sqlmock.NewRows([]string{"message_id"}))

		_, err := repo.CreateMessage(context.Background(), params)
		assert.ErrorIs(t, err, ErrNoGeneratedKey)
	})
}

func TestListMessages(t *testing.T) {
	t.Run("returns rows in order", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(listMessagesQuery)).WillReturnRows(
			sqlmock.NewRows(messageColumns).
				AddRow(1, 1, "first", 100).
				AddRow(2, 2, "second", 200),
		)

		msgs, err := repo.ListMessages(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []Message{
			{Id: 1, PostedBy: 1, MessageText: "first", TimePostedEpoch: 100},
			{Id: 2, PostedBy: 2, MessageText: "second", TimePostedEpoch: 200},
		}, msgs)
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(listMessagesQuery)).WillReturnRows(sqlmock.NewRows(messageColumns))

		msgs, err := repo.ListMessages(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, msgs)
		assert.Empty(t, msgs)
	})

	t.Run("row error", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(listMessagesQuery)).WillReturnRows(
			sqlmock.NewRows(messageColumns).
				AddRow(1, 1, "first", 100).
				RowError(0, errors.New("bad row")),
		)

		msgs, err := repo.ListMessages(context.Background())
		assert.Error(t, err)
		assert.Nil(t, msgs)
	})
}

func TestListMessagesByAccount(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(q(messagesByAccountQuery)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(messageColumns).AddRow(5, 2, "mine", 300))

	msgs, err := repo.ListMessagesByAccount(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []Message{{Id: 5, PostedBy: 2, MessageText: "mine", TimePostedEpoch: 300}}, msgs)
}

func TestGetMessageById(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(messageByIdQuery)).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows(messageColumns).AddRow(5, 2, "mine", 300))

		msg, ok, err := repo.GetMessageById(context.Background(), 5)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, Message{Id: 5, PostedBy: 2, MessageText: "mine", TimePostedEpoch: 300}, msg)
	})

	t.Run("absent", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(messageByIdQuery)).WithArgs(404).WillReturnRows(sqlmock.NewRows(messageColumns))

		_, ok, err := repo.GetMessageById(context.Background(), 404)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("failure is not absence", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(q(messageByIdQuery)).WithArgs(5).WillReturnError(errors.New("timeout"))

		_, ok, err := repo.GetMessageById(context.Background(), 5)
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestDeleteMessage(t *testing.T) {
	tcases := []struct {
		name     string
		affected int64
		expected bool
	}{
		{name: "row removed", affected: 1, expected: true},
		{name: "nothing removed", affected: 0, expected: false},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectExec(q(deleteMessageQuery)).WithArgs(5).WillReturnResult(sqlmock.NewResult(0, tc.affected))

			ok, err := repo.DeleteMessage(context.Background(), 5)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
		})
	}
}

func TestUpdateMessage(t *testing.T) {
	msg := Message{Id: 5, PostedBy: 2, MessageText: "edited", TimePostedEpoch: 300}

	t.Run("row updated", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(q(updateMessageQuery)).
			WithArgs(2, "edited", int64(300), 5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.UpdateMessage(context.Background(), msg)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("exec failure", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(q(updateMessageQuery)).
			WithArgs(2, "edited", int64(300), 5).
			WillReturnError(errors.New("deadlock"))

		ok, err := repo.UpdateMessage(context.Background(), msg)
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("unreachable"))

	repo := NewPgSocialMediaRepositoryFromDB(db)
	err = repo.Ping(context.Background())

	var storageErr *StorageError
	assert.ErrorAs(t, err, &storageErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
