package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"easyhome/internal/model"
	"easyhome/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatResponder runs one turn of the chat pipeline
type ChatResponder interface {
	Respond(ctx context.Context, message string, history []model.ChatMessage) (*service.ChatResult, error)
}

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chat ChatResponder
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat ChatResponder) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat handles POST /api/v1/chat.
//
// A malformed body is treated as an empty message: the credential check must
// run first regardless, and an empty message then yields the same 400 as a
// missing one.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Warning: invalid chat request body: %v", err)
	}

	result, err := h.chat.Respond(c.Request.Context(), req.Message, req.History)
	if err != nil {
		status, message := classifyError(err)
		c.JSON(status, model.ChatErrorResponse{Error: message, Success: false})
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{
		Response:        result.Response,
		Success:         true,
		HasPropertyData: result.HasPropertyData,
	})
}

func classifyError(err error) (int, string) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		if svcErr.Code == service.ErrorValidation {
			return http.StatusBadRequest, svcErr.Message
		}
		return http.StatusInternalServerError, svcErr.Message
	}
	return http.StatusInternalServerError, service.MsgGenerationFailed
}
