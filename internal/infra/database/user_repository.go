package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/xavierca1/landing-leads/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (nome, email, senha, data_cadastro)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, data_cadastro
	`

	err := r.DB.QueryRowContext(ctx, query, u.Nome, u.Email, u.Senha).Scan(&u.ID, &u.DataCadastro)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmailAlreadyExists
		}

		log.Printf("Erro crítico no banco de usuários: %v", err)
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1 LIMIT 1`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}
	return true, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT id, nome, email, senha, data_cadastro FROM users WHERE email = $1`

	var u entity.User
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Nome, &u.Email, &u.Senha, &u.DataCadastro)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &u, nil
}
