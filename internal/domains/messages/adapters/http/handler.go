package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bizdesk/go-business-records/internal/domains/messages/application"
	"github.com/bizdesk/go-business-records/internal/domains/messages/domain"
	"github.com/bizdesk/go-business-records/internal/domains/messages/ports"
	shared "github.com/bizdesk/go-business-records/internal/shared/errors"
)

// ActingUserHeader carries the message author.
const ActingUserHeader = "X-Acting-User"

// Handler wires HTTP transport with the messages bounded context service.
type Handler struct {
	service   ports.Service
	responder *shared.ChainedResponder
}

// NewHandler creates a Handler backed by the provided service.
func NewHandler(service ports.Service) *Handler {
	responder := shared.NewChainedResponder("", func(err error) (shared.ProblemDetail, bool) {
		if errors.Is(err, application.ErrInvalidInput) {
			return shared.ErrValidation.WithDetail(err.Error()), true
		}
		return shared.ProblemDetail{}, false
	})
	return &Handler{service: service, responder: responder}
}

// Register mounts the message routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/messages", h.list)
	rg.POST("/messages", h.post)
}

type messagePayload struct {
	Content string `json:"content" binding:"required"`
}

type messageResponse struct {
	ID      string    `json:"id"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	SentAt  time.Time `json:"sentAt"`
}

func (h *Handler) post(c *gin.Context) {
	var payload messagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	message, err := h.service.Post(c.Request.Context(), payload.Content, c.GetHeader(ActingUserHeader))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomain(message))
}

func (h *Handler) list(c *gin.Context) {
	messages, err := h.service.List(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	out := make([]messageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, fromDomain(message))
	}
	c.JSON(http.StatusOK, out)
}

func fromDomain(message *domain.Message) messageResponse {
	if message == nil {
		return messageResponse{}
	}
	return messageResponse{
		ID:      message.ID.String(),
		Content: message.Content,
		Author:  message.Author,
		SentAt:  message.SentAt,
	}
}
