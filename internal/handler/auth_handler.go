package handler

import (
	"net/http"

	"rentdesk/internal/middleware"
	"rentdesk/internal/service"
	"rentdesk/internal/validation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req validation.RegisterRequest
	if !bind(c, &req) {
		return
	}
	u, token, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
		Phone:    req.Phone,
		Country:  req.Country,
	})
	if err != nil {
		fail(c, err)
		return
	}
	middleware.LoggerFrom(c).Info().Str("user_id", u.ID).Str("role", u.Role).Msg("user registered")
	c.JSON(http.StatusCreated, gin.H{"user": u, "token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req validation.LoginRequest
	if !bind(c, &req) {
		return
	}
	u, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

func (h *AuthHandler) Me(c *gin.Context) {
	if u := middleware.GetUser(c); u != nil {
		c.JSON(http.StatusOK, u)
		return
	}
	u, err := h.svc.GetUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile expects the CloudUpload middleware on the "images" field.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req validation.ProfileRequest
	if !bindForm(c, &req) {
		return
	}
	up := middleware.GetUploads(c)
	u, err := h.svc.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), middleware.GetRole(c), c.Param("id"),
		service.ProfileInput{FullName: req.FullName, Phone: req.Phone, Bio: req.Bio}, up.Images)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
