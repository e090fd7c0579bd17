// Package admin проверяет пароль администратора и выдаёт токен доступа.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/finance-calculator/internal/lib/jwt"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/password"
)

// Subject subject выдаваемых токенов: администратор в сервисе один.
const Subject = "admin"

var (
	// ErrInvalidCredentials пароль не подошёл.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDisabled хеш пароля не задан в конфиге, вход закрыт.
	ErrDisabled = errors.New("admin login is disabled")
)

// TokenMaker выпускает токены.
type TokenMaker interface {
	GenerateToken(subject, role string) (string, time.Time, error)
}

// Service реализует вход администратора.
type Service struct {
	passwordHash string
	tokens       TokenMaker
	log          *slog.Logger
}

// NewService создаёт Service с bcrypt-хешем пароля из конфига.
func NewService(passwordHash string, tokens TokenMaker, log *slog.Logger) *Service {
	return &Service{passwordHash: passwordHash, tokens: tokens, log: log}
}

// Login сверяет пароль с хешем и возвращает токен с моментом истечения.
func (s *Service) Login(ctx context.Context, pass string) (string, time.Time, error) {
	const op = "admin.Login"
	if err := ctx.Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	if s.passwordHash == "" {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, ErrDisabled)
	}
	if err := password.CompareHash(s.passwordHash, pass); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			s.log.Warn("admin login failed")
			return "", time.Time{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	token, expires, err := s.tokens.GenerateToken(Subject, jwt.RoleAdmin)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("admin logged in")
	return token, expires, nil
}
