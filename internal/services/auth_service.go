package services

import (
	"errors"

	"github.com/Kennyy02/totomotorworx-shop/internal/repos"
	"github.com/Kennyy02/totomotorworx-shop/internal/token"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWrongEmail     = errors.New("Wrong Email ID")
	ErrWrongPassword  = errors.New("Wrong Password")
	ErrDuplicateEmail = errors.New("User with this email already exists")
	ErrDisabled       = errors.New("account disabled")
)

type AuthService struct {
	Users  *repos.UserRepo
	Tokens *token.Issuer
}

func NewAuthService(users *repos.UserRepo, tokens *token.Issuer) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

// Signup creates a user with an empty cart and returns a fresh bearer token.
// Password policy and consent are enforced at the handler before this point.
func (s *AuthService) Signup(name, email, password string) (string, error) {
	exists, err := s.Users.EmailExists(email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrDuplicateEmail
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", err
	}
	id, err := s.Users.Insert(name, email, string(hash), false)
	if err != nil {
		return "", err
	}
	return s.Tokens.Issue(id, false)
}

// Login mirrors the storefront's error surface: a missing account and a bad
// password produce distinct messages.
func (s *AuthService) Login(email, password string) (string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", ErrWrongEmail
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", ErrWrongPassword
	}
	if u.Disabled {
		return "", ErrDisabled
	}
	return s.Tokens.Issue(u.ID, u.IsAdmin)
}
