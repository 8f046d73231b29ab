package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/quickpoll/internal/apperror"
	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/repository"
)

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// UserDB is the users view of a DB.
type UserDB struct {
	db *DB
}

func (db *DB) Users() *UserDB {
	return &UserDB{db: db}
}

// Create inserts user and returns it with the id SQLite assigned.
// A taken username surfaces as apperror.ErrDuplicateUser.
func (u *UserDB) Create(ctx context.Context, user model.User) (model.User, error) {
	res, err := u.db.conn.ExecContext(ctx,
		`INSERT INTO users (username) VALUES (?)`,
		user.Username,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, apperror.DuplicateUser(user.Username)
		}
		return model.User{}, fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	user.ID, err = res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("sqlite: reading id of user %q: %w", user.Username, err)
	}
	return user, nil
}

func (u *UserDB) FindByID(ctx context.Context, id int64) (model.User, bool, error) {
	var user model.User
	err := u.db.conn.QueryRowContext(ctx,
		`SELECT id, username FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return user, true, nil
}

func (u *UserDB) FindByUsername(ctx context.Context, username string) (model.User, bool, error) {
	var user model.User
	err := u.db.conn.QueryRowContext(ctx,
		`SELECT id, username FROM users WHERE username = ?`, username,
	).Scan(&user.ID, &user.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}
	return user, true, nil
}
