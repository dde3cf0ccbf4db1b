package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/fanzone/internal/service/chat"
)

type ChatHandler struct {
	service chat.UseCase
}

type chatMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

func NewChatHandler(service chat.UseCase) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) Register(router *gin.RouterGroup) {
	router.POST("/message", h.message)
	router.GET("/history", h.history)
}

func (h *ChatHandler) message(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	reply, err := h.service.Reply(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (h *ChatHandler) history(c *gin.Context) {
	turns, err := h.service.History(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": turns})
}
