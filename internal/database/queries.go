package database

import (
	"context"
	"database/sql"
	"errors"
)

const (
	insertAccountQuery     = "INSERT INTO account (username, password) VALUES ($1, $2) RETURNING account_id"
	usernameExistsQuery    = "SELECT EXISTS (SELECT 1 FROM account WHERE username = $1)"
	accountByUsernameQuery = "SELECT account_id, username, password FROM account WHERE username = $1 ORDER BY account_id LIMIT 1"
	accountByIdQuery       = "SELECT account_id, username, password FROM account WHERE account_id = $1"

	insertMessageQuery     = "INSERT INTO message (posted_by, message_text, time_posted_epoch) VALUES ($1, $2, $3) RETURNING message_id"
	listMessagesQuery      = "SELECT message_id, posted_by, message_text, time_posted_epoch FROM message ORDER BY message_id"
	messageByIdQuery       = "SELECT message_id, posted_by, message_text, time_posted_epoch FROM message WHERE message_id = $1"
	deleteMessageQuery     = "DELETE FROM message WHERE message_id = $1"
	updateMessageQuery     = "UPDATE message SET posted_by = $1, message_text = $2, time_posted_epoch = $3 WHERE message_id = $4"
	messagesByAccountQuery = "SELECT message_id, posted_by, message_text, time_posted_epoch FROM message WHERE posted_by = $1 ORDER BY message_id"
)

func (db *PgSocialMediaRepository) CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error) {
	acct := Account{
		Username: params.Username,
		Password: params.Password,
	}

	err := db.withConn(ctx, "insert account", func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, insertAccountQuery, params.Username, params.Password).Scan(&acct.Id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoGeneratedKey
		}
		return err
	})
	if err != nil {
		return Account{}, err
	}

	return acct, nil
}

func (db *PgSocialMediaRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := db.withConn(ctx, "check username", func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, usernameExistsQuery, username).Scan(&exists)
	})

	return exists, err
}

// GetAccountByCredentials loads the account by username and compares the
// password here rather than in the query. Passwords are stored as given.
func (db *PgSocialMediaRepository) GetAccountByCredentials(ctx context.Context, username, password string) (Account, bool, error) {
	acct, ok, err := db.getAccount(ctx, "get account by username", accountByUsernameQuery, username)
	if err != nil || !ok {
		return Account{}, false, err
	}

	if acct.Password != password {
		return Account{}, false, nil
	}

	return acct, true, nil
}

func (db *PgSocialMediaRepository) GetAccountById(ctx context.Context, accountId int) (Account, bool, error) {
	return db.getAccount(ctx, "get account by id", accountByIdQuery, accountId)
}

func (db *PgSocialMediaRepository) getAccount(ctx context.Context, op, query string, arg any) (Account, bool, error) {
	var (
		acct  Account
		found bool
	)

	err := db.withConn(ctx, op, func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, query, arg).Scan(
			&acct.Id,
			&acct.Username,
			&acct.Password,
		)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil
		case err != nil:
			return err
		}

		found = true
		return nil
	})
	if err != nil || !found {
		return Account{}, false, err
	}

	return acct, true, nil
}

func (db *PgSocialMediaRepository) CreateMessage(ctx context.Context, params CreateMessageParams) (Message, error) {
	msg := Message{
		PostedBy:        params.PostedBy,
		MessageText:     params.MessageText,
		TimePostedEpoch: params.TimePostedEpoch,
	}

	err := db.withConn(ctx, "insert message", func(conn *sql.Conn) error {
		err := conn.QueryRowContext(
			ctx,
			insertMessageQuery,
			params.PostedBy,
			params.MessageText,
			params.TimePostedEpoch,
		).Scan(&msg.Id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoGeneratedKey
		}
		return err
	})
	if err != nil {
		return Message{}, err
	}

	return msg, nil
}

func (db *PgSocialMediaRepository) ListMessages(ctx context.Context) ([]Message, error) {
	return db.listMessages(ctx, "list messages", listMessagesQuery)
}

func (db *PgSocialMediaRepository) ListMessagesByAccount(ctx context.Context, accountId int) ([]Message, error) {
	return db.listMessages(ctx, "list messages by account", messagesByAccountQuery, accountId)
}

func (db *PgSocialMediaRepository) listMessages(ctx context.Context, op, query string, args ...any) ([]Message, error) {
	messages := make([]Message, 0)

	err := db.withConn(ctx, op, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var msg Message
			if err := rows.Scan(&msg.Id, &msg.PostedBy, &msg.MessageText, &msg.TimePostedEpoch); err != nil {
				return err
			}

			messages = append(messages, msg)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (db *PgSocialMediaRepository) GetMessageById(ctx context.Context, messageId int) (Message, bool, error) {
	var (
		msg   Message
		found bool
	)

	err := db.withConn(ctx, "get message by id", func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, messageByIdQuery, messageId).Scan(
			&msg.Id,
			&msg.PostedBy,
			&msg.MessageText,
			&msg.TimePostedEpoch,
		)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil
		case err != nil:
			return err
		}

		found = true
		return nil
	})
	if err != nil || !found {
		return Message{}, false, err
	}

	return msg, true, nil
}

// DeleteMessage reports whether at least one row was removed.
func (db *PgSocialMediaRepository) DeleteMessage(ctx context.Context, messageId int) (bool, error) {
	return db.execAffecting(ctx, "delete message", deleteMessageQuery, messageId)
}

// UpdateMessage overwrites every column of the row identified by msg.Id.
func (db *PgSocialMediaRepository) UpdateMessage(ctx context.Context, msg Message) (bool, error) {
	return db.execAffecting(
		ctx,
		"update message",
		updateMessageQuery,
		msg.PostedBy,
		msg.MessageText,
		msg.TimePostedEpoch,
		msg.Id,
	)
}

func (db *PgSocialMediaRepository) execAffecting(ctx context.Context, op, query string, args ...any) (bool, error) {
	var affected int64

	err := db.withConn(ctx, op, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}

		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
