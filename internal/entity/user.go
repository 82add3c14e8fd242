package entity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// User is a registered member. Senha holds the bcrypt hash, never the raw password.
type User struct {
	ID           int64     `json:"id"`
	Nome         string    `json:"nome"`
	Email        string    `json:"email"`
	Senha        string    `json:"-"`
	DataCadastro time.Time `json:"data_cadastro"`
}

// UserProfile is the projection returned to the browser after login.
type UserProfile struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

func NewUser(nome, email, senhaHash string) (*User, error) {
	user := &User{
		Nome:  nome,
		Email: email,
		Senha: senhaHash,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Nome) == "" {
		return errors.New("nome is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("email is required")
	}
	if u.Senha == "" {
		return errors.New("senha hash is required")
	}
	return nil
}

func (u *User) Profile() UserProfile {
	return UserProfile{ID: u.ID, Nome: u.Nome, Email: u.Email}
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
