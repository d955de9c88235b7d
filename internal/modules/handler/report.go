package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskmgr-io/taskmgr/internal/modules/serializer"
	"github.com/taskmgr-io/taskmgr/internal/modules/service"
)

type ReportHandler struct {
	svc service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{svc: s}
}

// TasksByStatus godoc
//
//	@Summary		Task counts grouped by status
//	@Tags			report
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=map[string]int}
//	@Router			/reports/tasks [get]
func (h *ReportHandler) TasksByStatus(c *gin.Context) {
	counts, err := h.svc.TasksByStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al generar reporte", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(counts))
}

// TasksByProject godoc
//
//	@Summary		Task counts per project
//	@Tags			report
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]service.ProjectReport}
//	@Router			/reports/projects [get]
func (h *ReportHandler) TasksByProject(c *gin.Context) {
	report, err := h.svc.ByProject(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al generar reporte", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(report))
}

// TasksByUser godoc
//
//	@Summary		Assigned task counts per user
//	@Tags			report
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]service.UserReport}
//	@Router			/reports/users [get]
func (h *ReportHandler) TasksByUser(c *gin.Context) {
	report, err := h.svc.ByUser(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al generar reporte", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(report))
}

// ExportCSV godoc
//
//	@Summary		Download all tasks as CSV
//	@Tags			report
//	@Produce		text/csv
//	@Security		BearerAuth
//	@Success		200	{string}	string
//	@Router			/reports/export-csv [get]
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	csv, err := h.svc.ExportCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al exportar tareas", err))
		return
	}

	c.Header("Content-Disposition", "attachment; filename=tareas.csv")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
