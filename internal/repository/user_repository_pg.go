package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/biletfinder/ticketing-service/internal/domain"
)

type pgUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository instantiates a pgx-backed account repository.
func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgUserRepository{pool: pool}
}

func (r *pgUserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, name, email, phone, password_hash, status)
        VALUES ($1,$2,LOWER($3),$4,$5,$6)
        RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Status,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *pgUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT id, name, email, phone, password_hash, status, created_at, updated_at FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *pgUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT id, name, email, phone, password_hash, status, created_at, updated_at FROM users WHERE email=LOWER($1)`
	return r.fetchSingle(ctx, query, email)
}

func (r *pgUserRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	type sqlState interface{ SQLState() string }
	var state sqlState
	return errors.As(err, &state) && state.SQLState() == "23505"
}
