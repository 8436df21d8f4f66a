package handler

import (
	"net/http"

	"rentdesk/internal/middleware"
	"rentdesk/internal/service"
	"rentdesk/internal/validation"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	list, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req validation.CategoryRequest
	if !bind(c, &req) {
		return
	}
	cat, err := h.svc.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHandler) CreateSubCategory(c *gin.Context) {
	var req validation.SubCategoryRequest
	if !bind(c, &req) {
		return
	}
	sc, err := h.svc.CreateSubCategory(c.Request.Context(), req.CategoryID, req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sc)
}

func (h *CatalogHandler) ListSubCategories(c *gin.Context) {
	list, err := h.svc.ListSubCategories(c.Request.Context(), c.Query("categoryId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) GetSubCategory(c *gin.Context) {
	sc, err := h.svc.GetSubCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

func (h *CatalogHandler) UpdateSubCategory(c *gin.Context) {
	var req validation.UpdateSubCategoryRequest
	if !bind(c, &req) {
		return
	}
	sc, err := h.svc.UpdateSubCategory(c.Request.Context(), c.Param("id"), service.SubCategoryPatch{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

func (h *CatalogHandler) DeleteSubCategory(c *gin.Context) {
	if err := h.svc.DeleteSubCategory(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subcategory deleted"})
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req validation.ServiceRequest
	if !bind(c, &req) {
		return
	}
	svc, err := h.svc.CreateService(c.Request.Context(), middleware.GetUserID(c), service.ServiceInput{
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	list, err := h.svc.ListServices(c.Request.Context(), c.Query("categoryId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
