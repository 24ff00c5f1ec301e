package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrEmptyTerminal  = errors.New("terminal name is required")
	ErrSecretRequired = errors.New("jwt secret is required")
)

const issuer = "trade-logger"

// Claims - JWT claims токена терминала
type Claims struct {
	Terminal string `json:"terminal"`
	jwt.RegisteredClaims
}

// Service выпускает и проверяет статические токены терминалов
type Service struct {
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewService создает новый auth сервис. tokenTTL <= 0 - токены без срока действия.
func NewService(jwtSecret string, tokenTTL time.Duration) (*Service, error) {
	if jwtSecret == "" {
		return nil, ErrSecretRequired
	}

	return &Service{
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}, nil
}

// GenerateToken создает JWT токен для терминала
func (s *Service) GenerateToken(terminal string) (string, error) {
	terminal = strings.TrimSpace(terminal)
	if terminal == "" {
		return "", ErrEmptyTerminal
	}

	now := s.now()

	claims := &Claims{
		Terminal: terminal,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  terminal,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	if s.tokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.tokenTTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.jwtSecret)
}

// ValidateToken проверяет JWT токен и возвращает claims
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return s.jwtSecret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.Terminal != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
