package middleware

import (
	"errors"
	"time"

	"Ecclesia/config"
	"Ecclesia/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

var (
	ErrTokenInvalid = errors.New("token inválido")
	ErrTokenExpired = errors.New("token expirado")
)

// Claims carrega a identidade autenticada: usuário, igreja e perfil. A
// igreja vem do token para que toda requisição já chegue com o escopo de
// isolamento resolvido.
type Claims struct {
	UserId   string `json:"user_id"`
	ChurchId string `json:"church_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type JwtService struct {
	secret    []byte
	expiresIn time.Duration
	issuer    string
}

func NewJwtService(cfg *config.Config) *JwtService {
	return &JwtService{
		secret:    []byte(cfg.JWT.Secret),
		expiresIn: time.Duration(cfg.JWT.ExpirationHours) * time.Hour,
		issuer:    cfg.JWT.Issuer,
	}
}

func (s *JwtService) GenerateToken(u *user.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserId:   u.Id.String(),
		ChurchId: u.ChurchId.String(),
		Role:     string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Id.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JwtService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if _, err := ulid.Parse(claims.UserId); err != nil {
		return nil, ErrTokenInvalid
	}
	if _, err := ulid.Parse(claims.ChurchId); err != nil {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
