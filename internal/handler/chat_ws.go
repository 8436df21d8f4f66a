package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"rentdesk/config"
	"rentdesk/internal/auth"
	"rentdesk/internal/middleware"
	"rentdesk/internal/service"
	"rentdesk/internal/ws"

	"github.com/gin-gonic/gin"
)

type inboundChat struct {
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
}

// MaintenanceChatWS upgrades GET /ws/maintenance/:id?token= to a websocket
// joined to the request's chat room. Inbound {receiverId, message} frames
// are stored like REST chat posts and broadcast to the room.
func MaintenanceChatWS(cfg *config.JWTConfig, users middleware.UserLookup, svc *service.MaintenanceService, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		claims, err := auth.ParseToken(cfg, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, invalid token"})
			return
		}
		u, err := users.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, user not found"})
			return
		}
		id := c.Param("id")
		m, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		who := service.Actor{ID: u.ID, Role: u.Role}
		if !svc.CanAccess(m, who) {
			fail(c, service.ErrForbidden)
			return
		}
		conn, err := ws.Upgrade(c.Writer, c.Request)
		if err != nil {
			return
		}
		lg := middleware.LoggerFrom(c).With().Str("maintenance_id", id).Str("user_id", u.ID).Logger()
		client := ws.NewClient(u.ID, u.Role)
		ws.Serve(hub, id, client, conn, func(raw []byte) {
			var in inboundChat
			if err := json.Unmarshal(raw, &in); err != nil || in.ReceiverID == "" || strings.TrimSpace(in.Message) == "" {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			msg, err := svc.CreateChat(ctx, id, u.ID, in.ReceiverID, in.Message)
			if err != nil {
				lg.Warn().Err(err).Msg("chat message rejected")
				return
			}
			hub.BroadcastTo(id, chatEvent(msg), msg.SenderID, msg.ReceiverID)
		})
	}
}
