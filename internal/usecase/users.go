package usecase

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/landing-leads/internal/entity"
)

// maxPasswordBytes is the longest input bcrypt hashes without truncating.
const maxPasswordBytes = 72

type UserService struct {
	Repo       entity.UserRepositoryInterface
	bcryptCost int
}

func NewUserService(repo entity.UserRepositoryInterface) *UserService {
	return &UserService{Repo: repo, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
func (s *UserService) WithBcryptCost(cost int) *UserService {
	s.bcryptCost = cost
	return s
}

func (s *UserService) RegisterUser(ctx context.Context, input RegisterUserInput) *Result {
	if errs := ValidateRegisterUserInput(input); len(errs) > 0 {
		return fail("", &DomainError{Code: CodeValidation, Message: "Todos os campos são obrigatórios"})
	}
	if len(input.Senha) > maxPasswordBytes {
		return fail("", &DomainError{Code: CodeValidation, Message: "Senha muito longa (máximo de 72 caracteres)"})
	}

	exists, err := s.Repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return fail("Erro ao cadastrar: ", technical("falha ao verificar email", err))
	}
	if exists {
		return fail("", duplicateUserEmail())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Senha), s.bcryptCost)
	if err != nil {
		return fail("Erro ao cadastrar: ", &TechnicalError{Code: "HASH_ERROR", Message: "falha ao gerar hash da senha", Err: err})
	}

	user, err := entity.NewUser(input.Nome, input.Email, string(hash))
	if err != nil {
		return fail("", &DomainError{Code: CodeValidation, Message: err.Error()})
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return fail("", duplicateUserEmail())
		}
		return fail("Erro ao cadastrar: ", technical("falha ao inserir usuário", err))
	}

	log.Printf("✅ Usuário %d cadastrado", user.ID)
	return succeed("Usuário cadastrado com sucesso")
}

func duplicateUserEmail() *DomainError {
	return &DomainError{Code: CodeDuplicateEmail, Message: "E-mail já cadastrado"}
}

// LoginUser checks the password and answers with {id, nome, email}; the hash never leaves this method.
func (s *UserService) LoginUser(ctx context.Context, input LoginUserInput) *Result {
	if errs := ValidateLoginUserInput(input); len(errs) > 0 {
		return fail("", &DomainError{Code: CodeValidation, Message: "E-mail e senha são obrigatórios"})
	}

	user, err := s.Repo.FindByEmail(ctx, input.Email)
	if errors.Is(err, entity.ErrUserNotFound) {
		return fail("", &DomainError{Code: CodeEmailNotFound, Message: "E-mail não encontrado"})
	}
	if err != nil {
		return fail("Erro ao fazer login: ", technical("falha ao buscar usuário", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Senha), []byte(input.Senha)); err != nil {
		return fail("", &DomainError{Code: CodeInvalidPassword, Message: "Senha incorreta"})
	}

	profile := user.Profile()
	result := succeed("Login realizado com sucesso")
	result.User = &profile
	return result
}
