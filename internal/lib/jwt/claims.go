// Package jwt выпускает и проверяет HS256-токены администратора.
package jwt

import (
	"time"
)

// RoleAdmin роль, которую получает вошедший администратор.
const RoleAdmin = "admin"

// Maker выпускает и разбирает токены.
type Maker interface {
	// GenerateToken возвращает подписанный токен и момент его истечения.
	GenerateToken(subject, role string) (string, time.Time, error)
	// ParseToken проверяет подпись и срок действия.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на общем секрете.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewJWTMaker создаёт MakerImpl с секретом и временем жизни токена.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// TTL время жизни выпускаемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}
