package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/orders/application"
	"github.com/bizdesk/go-business-records/internal/domains/orders/application/types"
	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
	"github.com/bizdesk/go-business-records/internal/domains/orders/ports"
	shared "github.com/bizdesk/go-business-records/internal/shared/errors"
)

// IdempotencyKeyHeader lets clients resubmit an order safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// Handler wires HTTP transport with the orders bounded context. Placements go
// through the orchestrator so they can run durably when a workflow engine is
// configured; reads hit the service directly.
type Handler struct {
	service      ports.Service
	orchestrator ports.Orchestrator
	responder    *shared.ChainedResponder
}

// NewHandler creates a Handler backed by the provided service and orchestrator.
func NewHandler(service ports.Service, orchestrator ports.Orchestrator) *Handler {
	responder := shared.NewChainedResponder("", func(err error) (shared.ProblemDetail, bool) {
		switch {
		case errors.Is(err, ports.ErrNotFound):
			return shared.ErrNotFound.WithDetail(err.Error()), true
		case errors.Is(err, ports.ErrIdempotencyConflict):
			return shared.ErrConflict.WithDetail(err.Error()), true
		case errors.Is(err, application.ErrInvalidInput):
			return shared.ErrValidation.WithDetail(err.Error()), true
		}
		return shared.ProblemDetail{}, false
	})
	return &Handler{service: service, orchestrator: orchestrator, responder: responder}
}

// Register mounts the order routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/orders", h.place)
	rg.GET("/orders", h.list)
	rg.GET("/orders/:id", h.get)
}

type customerPayload struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Province    string `json:"province"`
	City        string `json:"city"`
	Street      string `json:"street"`
	PhoneNumber string `json:"phoneNumber"`
}

type cartLinePayload struct {
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
}

type placeOrderPayload struct {
	Customer customerPayload   `json:"customer" binding:"required"`
	Lines    []cartLinePayload `json:"lines"`
}

func (h *Handler) place(c *gin.Context) {
	var payload placeOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}

	input := types.PlaceOrderInput{
		Customer: types.CustomerInput{
			FirstName:   payload.Customer.FirstName,
			LastName:    payload.Customer.LastName,
			Email:       payload.Customer.Email,
			Province:    payload.Customer.Province,
			City:        payload.Customer.City,
			Street:      payload.Customer.Street,
			PhoneNumber: payload.Customer.PhoneNumber,
		},
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	}
	for _, line := range payload.Lines {
		input.Lines = append(input.Lines, types.RawCartLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	result, err := h.orchestrator.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	if !result.Placed() {
		problem := shared.NewRejectionProblem(result.Reasons()).
			WithDetail("The order could not be placed.").
			WithExtension("draft", result.Draft)
		h.responder.Respond(c, problem)
		return
	}
	c.JSON(http.StatusCreated, fromDomain(result.Order))
}

// get accepts either the order UUID or the human-readable order number.
func (h *Handler) get(c *gin.Context) {
	ref := c.Param("id")
	var (
		order *domain.Order
		err   error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		order, err = h.service.GetByID(c.Request.Context(), id)
	} else {
		order, err = h.service.GetByNumber(c.Request.Context(), ref)
	}
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomain(order))
}

func (h *Handler) list(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, fromDomain(order))
	}
	c.JSON(http.StatusOK, out)
}

type orderItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type orderResponse struct {
	ID          string              `json:"id"`
	OrderNumber string              `json:"orderNumber"`
	OrderDate   time.Time           `json:"orderDate"`
	Status      string              `json:"status"`
	TotalPrice  string              `json:"totalPrice"`
	Customer    customerPayload     `json:"customer"`
	Items       []orderItemResponse `json:"items"`
}

func fromDomain(order *domain.Order) orderResponse {
	if order == nil {
		return orderResponse{}
	}
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			LineTotal: item.LineTotal.StringFixed(2),
		})
	}
	return orderResponse{
		ID:          order.ID.String(),
		OrderNumber: order.OrderNumber,
		OrderDate:   order.OrderDate,
		Status:      string(order.Status),
		TotalPrice:  order.TotalPrice.StringFixed(2),
		Customer: customerPayload{
			FirstName:   order.Customer.FirstName,
			LastName:    order.Customer.LastName,
			Email:       order.Customer.Email,
			Province:    order.Customer.Province,
			City:        order.Customer.City,
			Street:      order.Customer.Street,
			PhoneNumber: order.Customer.PhoneNumber,
		},
		Items: items,
	}
}
