package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizdesk/go-business-records/internal/domains/catalog/application"
	"github.com/bizdesk/go-business-records/internal/domains/catalog/domain"
	"github.com/bizdesk/go-business-records/internal/domains/catalog/ports"
	shared "github.com/bizdesk/go-business-records/internal/shared/errors"
)

// Handler wires HTTP transport with the catalog bounded context service.
type Handler struct {
	service   ports.Service
	responder *shared.ChainedResponder
}

// NewHandler creates a Handler backed by the provided service.
func NewHandler(service ports.Service) *Handler {
	responder := shared.NewChainedResponder("", func(err error) (shared.ProblemDetail, bool) {
		switch {
		case errors.Is(err, ports.ErrNotFound):
			return shared.NewNotFoundProblem("product", ""), true
		case errors.Is(err, application.ErrInvalidInput):
			return shared.ErrValidation.WithDetail(err.Error()), true
		}
		return shared.ProblemDetail{}, false
	})
	return &Handler{service: service, responder: responder}
}

// Register mounts the product routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/products", h.list)
	rg.POST("/products", h.create)
	rg.GET("/products/:id", h.get)
	rg.PUT("/products/:id", h.update)
	rg.DELETE("/products/:id", h.delete)
}

// productPayload uses string prices so money never round-trips through floats.
type productPayload struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         string   `json:"price" binding:"required"`
	StockQuantity int      `json:"stockQuantity"`
	CompanyID     string   `json:"companyId" binding:"required"`
	Tags          []string `json:"tags"`
}

type productResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         string   `json:"price"`
	StockQuantity int      `json:"stockQuantity"`
	CompanyID     string   `json:"companyId"`
	Tags          []string `json:"tags,omitempty"`
}

func (h *Handler) create(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}
	product, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomain(product))
}

func (h *Handler) update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	input, ok := h.bindInput(c)
	if !ok {
		return
	}
	product, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomain(product))
}

func (h *Handler) get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	product, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomain(product))
}

func (h *Handler) list(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, fromDomain(product))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bindInput(c *gin.Context) (ports.ProductInput, bool) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return ports.ProductInput{}, false
	}
	price, err := decimal.NewFromString(payload.Price)
	if err != nil {
		h.responder.ValidationFailed(c, map[string]string{"price": "must be a decimal number"})
		return ports.ProductInput{}, false
	}
	companyID, err := uuid.Parse(payload.CompanyID)
	if err != nil {
		h.responder.ValidationFailed(c, map[string]string{"companyId": "must be a valid UUID"})
		return ports.ProductInput{}, false
	}
	return ports.ProductInput{
		Name:          payload.Name,
		Description:   payload.Description,
		Price:         price,
		StockQuantity: payload.StockQuantity,
		CompanyID:     companyID,
		Tags:          payload.Tags,
	}, true
}

func (h *Handler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.responder.BadRequest(c, "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func fromDomain(product *domain.Product) productResponse {
	if product == nil {
		return productResponse{}
	}
	return productResponse{
		ID:            product.ID.String(),
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price.StringFixed(2),
		StockQuantity: product.StockQuantity,
		CompanyID:     product.CompanyID.String(),
		Tags:          product.Tags,
	}
}
