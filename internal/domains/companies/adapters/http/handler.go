package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/companies/application"
	"github.com/bizdesk/go-business-records/internal/domains/companies/domain"
	"github.com/bizdesk/go-business-records/internal/domains/companies/ports"
	shared "github.com/bizdesk/go-business-records/internal/shared/errors"
)

// ActingUserHeader carries the audit actor for mutating requests.
const ActingUserHeader = "X-Acting-User"

// Handler wires HTTP transport with the companies bounded context service.
type Handler struct {
	service   ports.Service
	responder *shared.ChainedResponder
}

// NewHandler creates a Handler backed by the provided service.
func NewHandler(service ports.Service) *Handler {
	responder := shared.NewChainedResponder("", func(err error) (shared.ProblemDetail, bool) {
		switch {
		case errors.Is(err, ports.ErrNotFound):
			return shared.NewNotFoundProblem("company", ""), true
		case errors.Is(err, application.ErrInvalidInput):
			return shared.ErrValidation.WithDetail(err.Error()), true
		}
		return shared.ProblemDetail{}, false
	})
	return &Handler{service: service, responder: responder}
}

// Register mounts the company routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/companies", h.list)
	rg.POST("/companies", h.create)
	rg.GET("/companies/:id", h.get)
	rg.PUT("/companies/:id", h.update)
	rg.DELETE("/companies/:id", h.delete)
}

type companyPayload struct {
	Name            string `json:"name" binding:"required"`
	YearsInBusiness int    `json:"yearsInBusiness"`
	Website         string `json:"website" binding:"required"`
	Province        string `json:"province"`
}

type companyResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	YearsInBusiness int        `json:"yearsInBusiness"`
	Website         string     `json:"website"`
	Province        string     `json:"province,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	CreatedBy       string     `json:"createdBy"`
	ModifiedAt      *time.Time `json:"modifiedAt,omitempty"`
	ModifiedBy      string     `json:"modifiedBy,omitempty"`
}

func (h *Handler) create(c *gin.Context) {
	var payload companyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	company, err := h.service.Create(c.Request.Context(), toInput(payload, c.GetHeader(ActingUserHeader)))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomain(company))
}

func (h *Handler) update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var payload companyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	company, err := h.service.Update(c.Request.Context(), id, toInput(payload, c.GetHeader(ActingUserHeader)))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomain(company))
}

func (h *Handler) get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	company, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomain(company))
}

func (h *Handler) list(c *gin.Context) {
	companies, err := h.service.List(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	out := make([]companyResponse, 0, len(companies))
	for _, company := range companies {
		out = append(out, fromDomain(company))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, c.GetHeader(ActingUserHeader)); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.responder.BadRequest(c, "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func toInput(payload companyPayload, actor string) ports.CompanyInput {
	return ports.CompanyInput{
		Name:            payload.Name,
		YearsInBusiness: payload.YearsInBusiness,
		Website:         payload.Website,
		Province:        payload.Province,
		Actor:           actor,
	}
}

func fromDomain(company *domain.Company) companyResponse {
	if company == nil {
		return companyResponse{}
	}
	return companyResponse{
		ID:              company.ID.String(),
		Name:            company.Name,
		YearsInBusiness: company.YearsInBusiness,
		Website:         company.Website,
		Province:        company.Province,
		CreatedAt:       company.Audit.CreatedAt,
		CreatedBy:       company.Audit.CreatedBy,
		ModifiedAt:      company.Audit.ModifiedAt,
		ModifiedBy:      company.Audit.ModifiedBy,
	}
}
