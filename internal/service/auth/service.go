package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/RestaurantReservationService/internal/service/auth/models"
	"github.com/m04kA/RestaurantReservationService/pkg/validator"
)

// Service вход персонала по учетным записям из конфигурации
type Service struct {
	accounts map[string]models.StaffAccount
	tokens   TokenIssuer
	logger   Logger
}

// NewService создает сервис авторизации
func NewService(accounts []models.StaffAccount, tokens TokenIssuer, logger Logger) *Service {
	byName := make(map[string]models.StaffAccount, len(accounts))
	for _, a := range accounts {
		byName[a.Username] = a
	}

	return &Service{
		accounts: byName,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login проверяет пароль по bcrypt-хэшу и выдает токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, validator.Describe(errs))
	}

	account, ok := s.accounts[req.Username]
	if !ok {
		s.logger.Warn("Login: unknown user %q", req.Username)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Error("Login: malformed password hash for user %q: %v", req.Username, err)
		} else {
			s.logger.Warn("Login: wrong password for user %q", req.Username)
		}
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(account.Username, account.Role)
	if err != nil {
		s.logger.Error("Login: failed to issue token for user %q: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user %q signed in as %s", account.Username, account.Role)
	return &models.LoginResponse{
		Token:     token,
		Role:      account.Role,
		ExpiresAt: expiresAt,
	}, nil
}
