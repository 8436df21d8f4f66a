package handler

import (
	"net/http"
	"time"

	"rentdesk/internal/middleware"
	"rentdesk/internal/models"
	"rentdesk/internal/repository"
	"rentdesk/internal/service"
	"rentdesk/internal/validation"
	"rentdesk/internal/ws"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	svc *service.MaintenanceService
	hub *ws.Hub
}

func NewMaintenanceHandler(svc *service.MaintenanceService, hub *ws.Hub) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc, hub: hub}
}

func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req validation.CreateMaintenanceRequest
	if !bind(c, &req) {
		return
	}
	schedule, _ := validation.ParseDate(req.ScheduleDate)
	m, err := h.svc.Create(c.Request.Context(), middleware.GetUserID(c), service.CreateMaintenanceInput{
		Description:            req.Description,
		ScheduleDate:           schedule,
		Offer:                  req.Offer,
		PropertyID:             req.PropertyID,
		ApartmentID:            req.ApartmentID,
		VendorID:               req.VendorID,
		CategoryID:             req.CategoryID,
		SubcategoryIDs:         req.SubcategoryIDs,
		CloudinaryURLs:         req.CloudinaryURLs,
		CloudinaryVideoURLs:    req.CloudinaryVideoURLs,
		CloudinaryDocumentURLs: req.CloudinaryDocumentURLs,
		ServiceID:              req.ServiceID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MaintenanceHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *MaintenanceHandler) VendorJobs(c *gin.Context) {
	list, err := h.svc.ListForVendorCategory(c.Request.Context(), c.Query("categoryId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *MaintenanceHandler) Get(c *gin.Context) {
	m, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MaintenanceHandler) Update(c *gin.Context) {
	if _, ok := h.load(c); !ok {
		return
	}
	var req validation.UpdateMaintenanceRequest
	if !bind(c, &req) {
		return
	}
	in := service.UpdateMaintenanceInput{
		Description:    req.Description,
		Offer:          req.Offer,
		ApartmentID:    req.ApartmentID,
		SubcategoryIDs: req.SubcategoryIDs,
	}
	if req.ScheduleDate != nil {
		t, _ := validation.ParseDate(*req.ScheduleDate)
		in.ScheduleDate = &t
	}
	m, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MaintenanceHandler) Delete(c *gin.Context) {
	if _, ok := h.load(c); !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance request deleted"})
}

func (h *MaintenanceHandler) Reschedule(c *gin.Context) {
	if _, ok := h.load(c); !ok {
		return
	}
	var req validation.RescheduleRequest
	if !bind(c, &req) {
		return
	}
	newDate, _ := validation.ParseDate(req.NewScheduleDate)
	m, err := h.svc.Reschedule(c.Request.Context(), c.Param("id"), newDate)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MaintenanceHandler) History(c *gin.Context) {
	if _, ok := h.load(c); !ok {
		return
	}
	list, err := h.svc.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *MaintenanceHandler) Decide(c *gin.Context) {
	var req validation.DecisionRequest
	if !bind(c, &req) {
		return
	}
	m, err := h.svc.Decide(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), req.Decision)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MaintenanceHandler) Accept(c *gin.Context) {
	m, err := h.svc.AcceptJob(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MaintenanceHandler) VendorAssigned(c *gin.Context) {
	assigned, err := h.svc.IsVendorAssigned(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assigned": assigned})
}

func (h *MaintenanceHandler) Pay(c *gin.Context) {
	if _, ok := h.load(c); !ok {
		return
	}
	var req validation.PayMaintenanceRequest
	if !bind(c, &req) {
		return
	}
	m, err := h.svc.ProcessPayment(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), req.ReceiverID, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MaintenanceHandler) PostChat(c *gin.Context) {
	if _, ok := h.load(c); !ok {
		return
	}
	var req validation.ChatMessageRequest
	if !bind(c, &req) {
		return
	}
	msg, err := h.svc.CreateChat(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), req.ReceiverID, req.Message)
	if err != nil {
		fail(c, err)
		return
	}
	h.hub.BroadcastTo(c.Param("id"), chatEvent(msg), msg.SenderID, msg.ReceiverID)
	c.JSON(http.StatusCreated, msg)
}

func (h *MaintenanceHandler) GetChat(c *gin.Context) {
	if _, ok := h.load(c); !ok {
		return
	}
	list, err := h.svc.GetChat(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *MaintenanceHandler) CheckWhitelist(c *gin.Context) {
	var req validation.CheckWhitelistRequest
	if !bind(c, &req) {
		return
	}
	w, err := h.svc.CheckWhitelist(c.Request.Context(), repository.WhitelistQuery{
		CategoryID:     req.CategoryID,
		SubcategoryIDs: req.SubcategoryIDs,
		PropertyID:     req.PropertyID,
		ApartmentID:    req.ApartmentID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"whitelisted": w != nil, "entry": w})
}

func (h *MaintenanceHandler) CreateWhitelist(c *gin.Context) {
	var req validation.CreateWhitelistRequest
	if !bind(c, &req) {
		return
	}
	w := &models.Whitelist{
		LandlordID:    middleware.GetUserID(c),
		CategoryID:    req.CategoryID,
		SubcategoryID: optionalStr(req.SubcategoryID),
		PropertyID:    optionalStr(req.PropertyID),
		ApartmentID:   optionalStr(req.ApartmentID),
	}
	if err := h.svc.CreateWhitelist(c.Request.Context(), w); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *MaintenanceHandler) ListWhitelist(c *gin.Context) {
	list, err := h.svc.ListWhitelist(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Attachments answers with the URLs CloudUpload produced for the "files" field.
func (h *MaintenanceHandler) Attachments(c *gin.Context) {
	up := middleware.GetUploads(c)
	c.JSON(http.StatusOK, gin.H{
		"cloudinaryUrls":         nonNilStrings(up.Images),
		"cloudinaryVideoUrls":    nonNilStrings(up.Videos),
		"cloudinaryDocumentUrls": nonNilStrings(up.Documents),
	})
}

// load fetches the request named by :id and checks the caller is a party to it.
func (h *MaintenanceHandler) load(c *gin.Context) (*models.Maintenance, bool) {
	m, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return nil, false
	}
	if !h.svc.CanAccess(m, actor(c)) {
		fail(c, service.ErrForbidden)
		return nil, false
	}
	return m, true
}

type chatMessageEvent struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	RoomID    string    `json:"chatRoomId"`
	SenderID  string    `json:"senderId"`
	Receiver  string    `json:"receiverId"`
	Content   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func chatEvent(m *models.Message) chatMessageEvent {
	return chatMessageEvent{
		Type:      "message",
		ID:        m.ID,
		RoomID:    m.ChatRoomID,
		SenderID:  m.SenderID,
		Receiver:  m.ReceiverID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func optionalStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
