package routes

import (
	"net/http"

	"Ecclesia/internal/contracts"
	"Ecclesia/internal/domain/member"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateMember(c *gin.Context) {
	userID, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.MemberCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	m, err := h.MemberService.CreateMember(ctx, &member.CreateMemberRequest{
		ChurchId: churchID,
		ActorId:  userID,
		Name:     body.Name,
		Email:    body.Email,
		Phone:    body.Phone,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.MemberResponse{
		Message: "Membro cadastrado com sucesso",
		Member:  m,
	})
}

func (h *Handler) ListMembers(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	members, total, err := h.MemberService.ListMembers(ctx, churchID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(members, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetMember(c *gin.Context) {
	memberID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	m, err := h.MemberService.GetMemberByID(ctx, memberID, churchID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": m})
}

func (h *Handler) UpdateMember(c *gin.Context) {
	memberID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.MemberUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	m, err := h.MemberService.UpdateMember(ctx, memberID, churchID, &member.UpdateMemberRequest{
		Name:     body.Name,
		Email:    body.Email,
		Phone:    body.Phone,
		IsActive: body.IsActive,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MemberResponse{
		Message: "Membro atualizado com sucesso",
		Member:  m,
	})
}

func (h *Handler) DeleteMember(c *gin.Context) {
	memberID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.MemberService.DeleteMember(ctx, memberID, churchID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Membro removido com sucesso"})
}
