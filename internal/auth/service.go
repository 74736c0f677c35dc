package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Service struct {
	repo UserRepository
}

func NewService(repo UserRepository) *Service {
	return &Service{repo: repo}
}

// SIGNUP
func (s *Service) Signup(ctx context.Context, username, password, name string) (*User, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	if username == "" || password == "" || name == "" {
		return nil, ErrMissingFields
	}

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		Username: username,
		Name:     name,
		Password: string(hashedPassword),
	}

	if err := s.repo.Save(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("saving user: %w", err)
	}

	return user, nil
}

// LOGIN
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
