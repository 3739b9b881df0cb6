package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

type principalService interface {
	List(ctx context.Context, filter models.EmployeeFilter, page models.PageRequest) ([]models.Employee, error)
	Create(ctx context.Context, req service.CreatePrincipalRequest) (*models.Employee, error)
	Update(ctx context.Context, id int64, req service.UpdatePrincipalRequest) (*models.Employee, error)
	Delete(ctx context.Context, id int64) error
}

// PrincipalHandler exposes principal endpoints.
type PrincipalHandler struct {
	service principalService
}

// NewPrincipalHandler constructs a handler.
func NewPrincipalHandler(svc principalService) *PrincipalHandler {
	return &PrincipalHandler{service: svc}
}

// List godoc
// @Summary List principals
// @Tags Principals
// @Produce json
// @Param id query int false "Exact id"
// @Param name query string false "Name substring"
// @Param count query int false "Page size (max 100)"
// @Param offset query int false "Offset (max 5000)"
// @Success 200 {object} response.Envelope
// @Router /principals [get]
func (h *PrincipalHandler) List(c *gin.Context) {
	named, page, err := namedFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	principals, err := h.service.List(c.Request.Context(), models.EmployeeFilter{ID: named.ID, Name: named.Name}, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, principals)
}

// Create godoc
// @Summary Create principal
// @Tags Principals
// @Accept json
// @Produce json
// @Param payload body service.CreatePrincipalRequest true "Principal payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Router /principals [post]
func (h *PrincipalHandler) Create(c *gin.Context) {
	var req service.CreatePrincipalRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	principal, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, principal)
}

// Update godoc
// @Summary Update principal
// @Tags Principals
// @Accept json
// @Produce json
// @Param id path int true "Principal ID"
// @Param payload body service.UpdatePrincipalRequest true "Principal payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /principals/{id} [put]
func (h *PrincipalHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdatePrincipalRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	principal, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, principal)
}

// Delete godoc
// @Summary Delete principal
// @Tags Principals
// @Produce json
// @Param id path int true "Principal ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /principals/{id} [delete]
func (h *PrincipalHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}
