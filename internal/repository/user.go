package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hortaconecta/hortaconecta-go/internal/model"
)

const userColumns = `id, login, name, email, password_hash, address, latitude, longitude, created_at`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
// A caller-supplied non-zero ID is kept.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, login, name, email, password_hash, address, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	var id any
	if user.ID > 0 {
		id = user.ID
	}

	result, err := r.db.ExecContext(ctx, query,
		id, user.Login, user.Name, user.Email, user.PasswordHash,
		user.Address, user.Latitude, user.Longitude,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	newID, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = newID
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// List returns every user ordered by ID.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Login, &u.Name, &u.Email, &u.PasswordHash,
			&u.Address, &u.Latitude, &u.Longitude, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// Update overwrites the profile fields of an existing user.
// Coordinates are left as computed at registration.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET login = ?, name = ?, email = ?, password_hash = ?, address = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		user.Login, user.Name, user.Email, user.PasswordHash, user.Address, user.ID,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return affectedOrErr(result, ErrUserNotFound)
}

// Delete removes a user. Their garden and products go with them.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrUserNotFound)
}

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Login, &user.Name, &user.Email, &user.PasswordHash,
		&user.Address, &user.Latitude, &user.Longitude, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
