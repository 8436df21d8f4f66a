package handler

import (
	"net/http"

	"rentdesk/internal/middleware"
	"rentdesk/internal/service"
	"rentdesk/internal/validation"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	svc *service.PropertyService
}

func NewPropertyHandler(svc *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

// Create expects CloudUpload on the "files" field; uploaded images become
// the property's gallery.
func (h *PropertyHandler) Create(c *gin.Context) {
	var req validation.PropertyRequest
	if !bindForm(c, &req) {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), middleware.GetUserID(c), service.PropertyInput{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Description: req.Description,
	}, middleware.GetUploads(c).Images)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PropertyHandler) ListMine(c *gin.Context) {
	list, err := h.svc.ListMine(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PropertyHandler) ListShowcased(c *gin.Context) {
	list, err := h.svc.ListShowcased(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PropertyHandler) ToggleShowcase(c *gin.Context) {
	p, err := h.svc.ToggleShowcase(c.Request.Context(), middleware.GetUserID(c), c.Param("propertyId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("propertyId")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

func (h *PropertyHandler) AddApartment(c *gin.Context) {
	var req validation.ApartmentRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.svc.AddApartment(c.Request.Context(), middleware.GetUserID(c), c.Param("propertyId"), service.ApartmentInput{
		Name:       req.Name,
		Rooms:      req.Rooms,
		RentAmount: req.RentAmount,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *PropertyHandler) ListApartments(c *gin.Context) {
	list, err := h.svc.ListApartments(c.Request.Context(), middleware.GetUserID(c), c.Param("propertyId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PropertyHandler) CreateSetting(c *gin.Context) {
	var req validation.SettingRequest
	if !bind(c, &req) {
		return
	}
	st, err := h.svc.CreateSetting(c.Request.Context(), middleware.GetUserID(c), service.SettingInput{
		PropertyID:        optionalStr(req.PropertyID),
		LateFeePercentage: &req.LateFeePercentage,
		GracePeriodDays:   &req.GracePeriodDays,
		RentDueDay:        &req.RentDueDay,
		SecurityDeposit:   &req.SecurityDeposit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (h *PropertyHandler) ListSettings(c *gin.Context) {
	list, err := h.svc.ListSettings(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PropertyHandler) GetSetting(c *gin.Context) {
	st, err := h.svc.GetSetting(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *PropertyHandler) UpdateSetting(c *gin.Context) {
	var req validation.UpdateSettingRequest
	if !bind(c, &req) {
		return
	}
	st, err := h.svc.UpdateSetting(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), service.SettingInput{
		LateFeePercentage: req.LateFeePercentage,
		GracePeriodDays:   req.GracePeriodDays,
		RentDueDay:        req.RentDueDay,
		SecurityDeposit:   req.SecurityDeposit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *PropertyHandler) DeleteSetting(c *gin.Context) {
	if err := h.svc.DeleteSetting(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Setting deleted"})
}
