package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"guardrails/internal/services"
)

// ChatHandler proxies user queries to the agent engine.
type ChatHandler struct {
	chatService services.ChatServicer
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService services.ChatServicer) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatQueryRequest represents a query to forward to the agent engine.
type ChatQueryRequest struct {
	UserID  *uint           `json:"user_id"`
	Query   *string         `json:"query"`
	Tools   []string        `json:"tools"`
	Context json.RawMessage `json:"context" swaggertype:"object"`
}

// Query handles a chat query.
// @Summary     Query the agent
// @Description Forward a query to the agent engine and relay its verdict. Engine failures keep the engine's status code.
// @Tags        chat
// @Accept      json
// @Produce     json
// @Param       request body ChatQueryRequest true "Query"
// @Success     200 {object} ChatResponse "Engine verdict"
// @Failure     400 {object} ErrorResponse "Missing required fields"
// @Failure     500 {object} ErrorResponse "Failed to execute query"
// @Router      /chat/query [post]
func (h *ChatHandler) Query(c *gin.Context) {
	var req ChatQueryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.chatService.Query(c.Request.Context(), services.ChatRequest{
		UserID:  req.UserID,
		Query:   req.Query,
		Tools:   req.Tools,
		Context: req.Context,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
