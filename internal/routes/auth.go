package routes

import (
	"net/http"

	"Ecclesia/internal/contracts"
	"Ecclesia/internal/domain/user"
	appErrors "Ecclesia/internal/errors"

	"github.com/gin-gonic/gin"
)

// RegisterChurch cria a igreja e seu primeiro usuário administrador.
func (h *Handler) RegisterChurch(c *gin.Context) {
	var body contracts.RegisterChurchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()

	ch, err := h.ChurchService.CreateChurch(ctx, body.ChurchName, body.Slug)
	if err != nil {
		h.respondError(c, err)
		return
	}

	admin, err := h.UserService.CreateUser(ctx, &user.CreateUserRequest{
		ChurchId: ch.Id,
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Role:     user.RoleAdmin,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.JwtService.GenerateToken(admin)
	if err != nil {
		h.respondError(c, appErrors.ErrInternalServer.WithError(err))
		return
	}

	c.JSON(http.StatusCreated, contracts.LoginResponse{
		Token: token,
		User:  admin,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var body contracts.LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	u, err := h.UserService.Authenticate(ctx, body.Email, body.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.JwtService.GenerateToken(u)
	if err != nil {
		h.respondError(c, appErrors.ErrInternalServer.WithError(err))
		return
	}

	c.JSON(http.StatusOK, contracts.LoginResponse{
		Token: token,
		User:  u,
	})
}

// RegisterUser cria um novo usuário na igreja do administrador autenticado.
func (h *Handler) RegisterUser(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.RegisterUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	u, err := h.UserService.CreateUser(ctx, &user.CreateUserRequest{
		ChurchId: churchID,
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Role:     user.Role(body.Role),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.UserResponse{
		Message: "Usuário criado com sucesso",
		User:    u,
	})
}

func (h *Handler) Me(c *gin.Context) {
	userID, _, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	u, err := h.UserService.GetByID(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u})
}
