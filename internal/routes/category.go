package routes

import (
	"net/http"

	"Ecclesia/internal/contracts"
	"Ecclesia/internal/domain/category"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCategory(c *gin.Context) {
	userID, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CategoryCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	cat, err := h.CategoryService.CreateCategory(ctx, &category.CreateCategoryRequest{
		ChurchId: churchID,
		ActorId:  userID,
		Name:     body.Name,
		Type:     category.Type(body.Type),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CategoryResponse{
		Message:  "Categoria criada com sucesso",
		Category: cat,
	})
}

func (h *Handler) ListCategories(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var typ *category.Type
	if raw := c.Query("type"); raw != "" {
		t := category.Type(raw)
		typ = &t
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	categories, total, err := h.CategoryService.ListCategories(ctx, churchID, typ, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(categories, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetCategory(c *gin.Context) {
	categoryID, err := pkg.ParseULID(c.Param("id"))
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
	cat, err := h.CategoryService.GetCategoryByID(ctx, categoryID, churchID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": cat})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	cat, err := h.CategoryService.UpdateCategory(ctx, categoryID, churchID, &category.UpdateCategoryRequest{
		Name: body.Name,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategoryResponse{
		Message:  "Categoria atualizada com sucesso",
		Category: cat,
	})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	categoryID, err := pkg.ParseULID(c.Param("id"))
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
	if err := h.CategoryService.DeleteCategory(ctx, categoryID, churchID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Categoria removida com sucesso"})
}
