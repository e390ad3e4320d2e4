package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/bahadricoz/shift/internal/dto"
	"github.com/bahadricoz/shift/internal/middleware"
	"github.com/gin-gonic/gin"
)

// departmentHandler handles HTTP requests related to departments.
type departmentHandler struct {
	departmentService portssvc.DepartmentService
}

func newDepartmentHandler(ds portssvc.DepartmentService) *departmentHandler {
	return &departmentHandler{departmentService: ds}
}

// registerDepartmentRoutes registers routes related to departments.
func registerDepartmentRoutes(rg *gin.RouterGroup, departmentService portssvc.DepartmentService) {
	h := newDepartmentHandler(departmentService)

	departments := rg.Group("/departments")
	{
		departments.POST("", h.createDepartment)
		departments.GET("", h.listDepartments)
		departments.GET("/:departmentID", h.getDepartment)
		departments.DELETE("/:departmentID", h.deleteDepartment)
	}
}

// createDepartment godoc
// @Summary Create a new department
// @Description Creates a department; requires an admin capability
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   department body dto.CreateDepartmentRequest true "Department details"
// @Success 201 {object} dto.DepartmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Insufficient access"
// @Failure 409 {object} map[string]string "Department name already exists"
// @Security BearerAuth
// @Router /departments [post]
func (h *departmentHandler) createDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDepartment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	capability := middleware.GetCapabilityFromContext(c)
	department, err := h.departmentService.CreateDepartment(c.Request.Context(), capability, req.Name)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDepartmentResponse(department))
}

// getDepartment godoc
// @Summary Get a department
// @Description Retrieves one department by ID; viewer capability suffices
// @Tags departments
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 403 {object} map[string]string "Insufficient access"
// @Failure 404 {object} map[string]string "Department not found"
// @Security BearerAuth
// @Router /departments/{departmentID} [get]
func (h *departmentHandler) getDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")

	capability := middleware.GetCapabilityFromContext(c)
	department, err := h.departmentService.GetDepartment(c.Request.Context(), capability, departmentID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentResponse(department))
}

// listDepartments godoc
// @Summary List departments
// @Description Lists departments visible to the capability; global sees all, scoped sees its own
// @Tags departments
// @Produce  json
// @Success 200 {object} dto.ListDepartmentsResponse
// @Failure 403 {object} map[string]string "Insufficient access"
// @Security BearerAuth
// @Router /departments [get]
func (h *departmentHandler) listDepartments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	capability := middleware.GetCapabilityFromContext(c)
	departments, err := h.departmentService.ListDepartments(c.Request.Context(), capability)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListDepartmentsResponse(departments))
}

// deleteDepartment godoc
// @Summary Delete a department
// @Description Deletes a department; rejected while members or links still reference it
// @Tags departments
// @Param   departmentID path string true "Department ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Insufficient access"
// @Failure 404 {object} map[string]string "Department not found"
// @Failure 409 {object} map[string]string "Department still referenced"
// @Security BearerAuth
// @Router /departments/{departmentID} [delete]
func (h *departmentHandler) deleteDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")

	capability := middleware.GetCapabilityFromContext(c)
	if err := h.departmentService.DeleteDepartment(c.Request.Context(), capability, departmentID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
