package services

import (
	"coursework/backend/config"
	"coursework/backend/models"
	"coursework/backend/utils"
	"errors"
	"fmt"
	"strings"
)

type UserStore interface {
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(user *models.User) (bool, error)
}

var ErrUserExists = errors.New("user already exists")

type AuthService struct {
	Store UserStore
	Cfg   *config.Config
}

func NewAuthService(store UserStore, cfg *config.Config) *AuthService {
	return &AuthService{Store: store, Cfg: cfg}
}

// Authenticate checks the login and password and issues a session token.
// Unknown login and wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(login, password string) (*models.User, string, error) {
	user, err := s.Store.GetUserByUsername(strings.TrimSpace(login))
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !utils.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := utils.GenerateJWTToken(user.Username, s.Cfg)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// CurrentUser resolves a session token to its account.
func (s *AuthService) CurrentUser(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidCredentials
	}
	login, err := utils.ParseJWTToken(token, s.Cfg)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.Store.GetUserByUsername(login)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateAdmin creates an administrator account. An existing login is refused.
func (s *AuthService) CreateAdmin(login, fullName, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, errors.New("login and password are required")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		FullName:     strings.TrimSpace(fullName),
		Username:     login,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	created, err := s.Store.CreateUser(user)
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	if !created {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, login)
	}
	return user, nil
}
