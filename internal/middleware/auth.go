package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const (
	ContextUserId   = "user_id"
	ContextChurchId = "church_id"
	ContextRole     = "role"
)

// AuthMiddleware valida o bearer token e injeta usuário, igreja e perfil no
// contexto da requisição.
func AuthMiddleware(jwtService *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "NAO_AUTORIZADO",
				"message": "Token de autenticação não informado",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "NAO_AUTORIZADO",
				"message": "Formato do token inválido",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			message := "Token inválido"
			if err == ErrTokenExpired {
				message = "Token expirado"
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "NAO_AUTORIZADO",
				"message": message,
			})
			c.Abort()
			return
		}

		c.Set(ContextUserId, claims.UserId)
		c.Set(ContextChurchId, claims.ChurchId)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// RequireRole restringe a rota aos perfis informados.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "ACESSO_NEGADO",
			"message": "Perfil sem permissão para esta operação",
		})
		c.Abort()
	}
}

// GetUserID lê o usuário autenticado do contexto da requisição.
func GetUserID(c *gin.Context) (ulid.ULID, bool) {
	raw := c.GetString(ContextUserId)
	if raw == "" {
		return ulid.ULID{}, false
	}
	id, err := ulid.Parse(raw)
	if err != nil {
		return ulid.ULID{}, false
	}
	return id, true
}

// GetChurchID lê a igreja do usuário autenticado do contexto da requisição.
func GetChurchID(c *gin.Context) (ulid.ULID, bool) {
	raw := c.GetString(ContextChurchId)
	if raw == "" {
		return ulid.ULID{}, false
	}
	id, err := ulid.Parse(raw)
	if err != nil {
		return ulid.ULID{}, false
	}
	return id, true
}
