package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

type markService interface {
	List(ctx context.Context, filter models.MarkFilter, page models.PageRequest) ([]models.Mark, error)
	Create(ctx context.Context, claims models.Claims, req service.CreateMarkRequest) (*models.Mark, error)
}

type markExporter interface {
	ExportMarks(ctx context.Context, filter models.MarkFilter, page models.PageRequest, format service.ExportFormat) (*service.ExportResult, error)
}

// MarkHandler exposes mark endpoints.
type MarkHandler struct {
	service  markService
	exporter markExporter
}

// NewMarkHandler constructs a handler.
func NewMarkHandler(svc markService, exporter markExporter) *MarkHandler {
	return &MarkHandler{service: svc, exporter: exporter}
}

// List godoc
// @Summary List marks
// @Description Newest first
// @Tags Marks
// @Produce json
// @Param student_ids query []int false "Student ids" collectionFormat(multi)
// @Param teacher_ids query []int false "Teacher ids (alias teachers_ids)" collectionFormat(multi)
// @Param subject_ids query []int false "Subject ids" collectionFormat(multi)
// @Param least query int false "Lowest mark"
// @Param most query int false "Highest mark"
// @Param after query string false "RFC3339 lower time bound"
// @Param before query string false "RFC3339 upper time bound"
// @Param count query int false "Page size (max 500)"
// @Param offset query int false "Offset (max 10000)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Router /marks [get]
func (h *MarkHandler) List(c *gin.Context) {
	filter, page, err := markFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	marks, err := h.service.List(c.Request.Context(), filter, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, marks)
}

// Create godoc
// @Summary Grade a student
// @Description Teachers always grade as themselves; principals must pass teacher_id
// @Tags Marks
// @Accept json
// @Produce json
// @Param payload body service.CreateMarkRequest true "Mark payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 401 {object} response.ErrorEnvelope
// @Router /marks [post]
func (h *MarkHandler) Create(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CreateMarkRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	mark, err := h.service.Create(c.Request.Context(), *claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, mark)
}

// Export godoc
// @Summary Export marks
// @Description Renders the filtered marks as a CSV or PDF attachment
// @Tags Marks
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Param student_ids query []int false "Student ids" collectionFormat(multi)
// @Param teacher_ids query []int false "Teacher ids" collectionFormat(multi)
// @Param subject_ids query []int false "Subject ids" collectionFormat(multi)
// @Param count query int false "Row limit (max 5000)"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorEnvelope
// @Router /marks/export [get]
func (h *MarkHandler) Export(c *gin.Context) {
	filter, page, err := markFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.exporter.ExportMarks(c.Request.Context(), filter, page, service.ExportFormat(c.Query("format")))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func markFilter(c *gin.Context) (models.MarkFilter, models.PageRequest, error) {
	var (
		filter models.MarkFilter
		err    error
	)
	if filter.StudentIDs, err = queryIDs(c, "student_ids"); err != nil {
		return filter, models.PageRequest{}, err
	}
	if filter.TeacherIDs, err = queryIDs(c, "teacher_ids", "teachers_ids"); err != nil {
		return filter, models.PageRequest{}, err
	}
	if filter.SubjectIDs, err = queryIDs(c, "subject_ids"); err != nil {
		return filter, models.PageRequest{}, err
	}
	if filter.Least, err = queryInt16(c, "least"); err != nil {
		return filter, models.PageRequest{}, err
	}
	if filter.Most, err = queryInt16(c, "most"); err != nil {
		return filter, models.PageRequest{}, err
	}
	if filter.After, err = queryTime(c, "after"); err != nil {
		return filter, models.PageRequest{}, err
	}
	if filter.Before, err = queryTime(c, "before"); err != nil {
		return filter, models.PageRequest{}, err
	}
	page, err := pageRequest(c)
	return filter, page, err
}
