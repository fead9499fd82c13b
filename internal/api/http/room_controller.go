package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/parlorgames/impostor-server/internal/api/http/converter"
	"github.com/parlorgames/impostor-server/internal/domain"
	"github.com/parlorgames/impostor-server/internal/service"
	"github.com/parlorgames/impostor-server/lib/logger/sl"
)

type RoomController struct {
	rooms    service.RoomInteractor
	hub      *service.Hub
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewRoomController(rooms service.RoomInteractor, hub *service.Hub, log *slog.Logger) *RoomController {
	return &RoomController{
		rooms: rooms,
		hub:   hub,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (c *RoomController) CreateRoom(ctx *gin.Context) {
	type request struct {
		ClientID string `json:"client_id" binding:"required"`
		Name     string `json:"name" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	room, host, err := c.rooms.CreateRoom(ctx.Request.Context(), req.ClientID, req.Name)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"room":   converter.RoomToAPI(room),
		"player": converter.PlayersToAPI([]*domain.Player{host})[0],
	})
}

func (c *RoomController) GetRoom(ctx *gin.Context) {
	room, players, err := c.rooms.GetRoom(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"room":    converter.RoomToAPI(room),
		"players": converter.PlayersToAPI(players),
	})
}

func (c *RoomController) GetState(ctx *gin.Context) {
	snap, err := c.rooms.Snapshot(ctx.Request.Context(), ctx.Param("code"), ctx.Query("client_id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, converter.SnapshotToAPI(snap))
}

func (c *RoomController) JoinRoom(ctx *gin.Context) {
	type request struct {
		ClientID string `json:"client_id" binding:"required"`
		Name     string `json:"name"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	room, player, err := c.rooms.JoinRoom(ctx.Request.Context(), ctx.Param("code"), req.ClientID, req.Name)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"room":   converter.RoomToAPI(room),
		"player": converter.PlayersToAPI([]*domain.Player{player})[0],
	})
}

func (c *RoomController) LeaveRoom(ctx *gin.Context) {
	type request struct {
		ClientID string `json:"client_id" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := c.rooms.LeaveRoom(ctx.Request.Context(), ctx.Param("code"), req.ClientID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *RoomController) PostChat(ctx *gin.Context) {
	type request struct {
		ClientID string `json:"client_id" binding:"required"`
		Content  string `json:"content" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := c.rooms.PostChatMessage(ctx.Request.Context(), ctx.Param("code"), req.ClientID, req.Content)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": converter.ChatToAPI([]*domain.ChatMessage{msg})[0],
	})
}

func (c *RoomController) ListChat(ctx *gin.Context) {
	msgs, err := c.rooms.ListChat(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": converter.ChatToAPI(msgs)})
}

// Events upgrades to a websocket and streams change hints for the room. The
// payload of each event is advisory; clients re-fetch the snapshot endpoint
// when anything arrives.
func (c *RoomController) Events(ctx *gin.Context) {
	code := domain.NormalizeCode(ctx.Param("code"))

	if _, _, err := c.rooms.GetRoom(ctx.Request.Context(), code); err != nil {
		respondError(ctx, err)
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Error("failed to upgrade connection", sl.Err(err))
		return
	}

	sub := c.hub.Subscribe(code)
	go forwardEvents(conn, sub)

	clientID := ctx.Query("client_id")

	for {
		var msg wsInbound
		if err := conn.ReadJSON(&msg); err != nil {
			c.hub.Unsubscribe(code, sub.ID)
			conn.Close()
			return
		}

		if msg.ClientID == "" {
			msg.ClientID = clientID
		}

		switch msg.Type {
		case "chat":
			if _, err := c.rooms.PostChatMessage(context.Background(), code, msg.ClientID, msg.Content); err != nil {
				_ = conn.WriteJSON(gin.H{"error": err.Error()})
			}
		case "leave":
			if err := c.rooms.LeaveRoom(context.Background(), code, msg.ClientID); err != nil {
				_ = conn.WriteJSON(gin.H{"error": err.Error()})
			}
			c.hub.Unsubscribe(code, sub.ID)
			conn.Close()
			return
		default:
			_ = conn.WriteJSON(gin.H{"error": "unsupported message type: " + msg.Type})
		}
	}
}

type wsInbound struct {
	Type     string `json:"type"`
	ClientID string `json:"client_id,omitempty"`
	Content  string `json:"content,omitempty"`
}

func forwardEvents(conn *websocket.Conn, sub *service.Subscriber) {
	for event := range sub.Events {
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}
}
