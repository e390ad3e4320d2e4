package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/bahadricoz/shift/internal/dto"
	"github.com/bahadricoz/shift/internal/middleware"
	"github.com/gin-gonic/gin"
)

// shiftHandler handles HTTP requests related to shift rows.
type shiftHandler struct {
	shiftService portssvc.ShiftService
}

func newShiftHandler(ss portssvc.ShiftService) *shiftHandler {
	return &shiftHandler{shiftService: ss}
}

// registerShiftRoutes registers routes related to shifts.
func registerShiftRoutes(rg *gin.RouterGroup, shiftService portssvc.ShiftService) {
	h := newShiftHandler(shiftService)

	shifts := rg.Group("/departments/:departmentID/shifts")
	{
		shifts.POST("", h.createShift)
		shifts.GET("", h.listShifts)
		shifts.DELETE("", h.clearMemberDate)
		shifts.PUT("/:shiftID", h.editShift)
		shifts.DELETE("/:shiftID", h.deleteShift)
	}
	rg.GET("/departments/:departmentID/work-types", h.listWorkTypes)
}

// createShift godoc
// @Summary Create a shift
// @Description Creates a shift row for a member on a date, subject to the per-day cap
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Param   shift body dto.UpsertShiftRequest true "Shift details"
// @Success 201 {object} dto.ShiftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Insufficient access"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 422 {object} map[string]string "Rule violation"
// @Security BearerAuth
// @Router /departments/{departmentID}/shifts [post]
func (h *shiftHandler) createShift(c *gin.Context) {
	h.upsertShift(c, nil)
}

// editShift godoc
// @Summary Edit a shift
// @Description Rewrites an existing shift row in place
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Param   shiftID path string true "Shift ID"
// @Param   shift body dto.UpsertShiftRequest true "Shift details"
// @Success 200 {object} dto.ShiftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Insufficient access"
// @Failure 404 {object} map[string]string "Shift not found"
// @Failure 422 {object} map[string]string "Rule violation"
// @Security BearerAuth
// @Router /departments/{departmentID}/shifts/{shiftID} [put]
func (h *shiftHandler) editShift(c *gin.Context) {
	shiftID := c.Param("shiftID")
	h.upsertShift(c, &shiftID)
}

func (h *shiftHandler) upsertShift(c *gin.Context, shiftID *string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")

	var req dto.UpsertShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertShift", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	input, err := parseUpsertShift(departmentID, shiftID, req)
	if err != nil {
		logger.Warn("Failed to parse shift payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	capability := middleware.GetCapabilityFromContext(c)
	shift, err := h.shiftService.UpsertShift(c.Request.Context(), capability, input)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	status := http.StatusCreated
	if shiftID != nil {
		status = http.StatusOK
	}
	c.JSON(status, dto.ToShiftResponse(shift))
}

// listShifts godoc
// @Summary List shifts
// @Description Lists shifts in an inclusive date range with optional member, work type and food payment filters
// @Tags shifts
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Param   from query string true "Range start (YYYY-MM-DD)"
// @Param   to query string true "Range end (YYYY-MM-DD)"
// @Param   members query string false "Comma-separated member references"
// @Param   workTypes query string false "Comma-separated work type labels"
// @Param   foodPayment query string false "ALL, YES or NO" default(ALL)
// @Success 200 {object} dto.ListShiftsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Insufficient access"
// @Security BearerAuth
// @Router /departments/{departmentID}/shifts [get]
func (h *shiftHandler) listShifts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	query, err := parseShiftRangeQuery(c)
	if err != nil {
		logger.Warn("Failed to parse range query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	capability := middleware.GetCapabilityFromContext(c)
	shifts, err := h.shiftService.ListShiftsForRange(c.Request.Context(), capability, query)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListShiftsResponse(shifts))
}

// deleteShift godoc
// @Summary Delete a shift
// @Description Removes one shift row
// @Tags shifts
// @Param   departmentID path string true "Department ID"
// @Param   shiftID path string true "Shift ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Insufficient access"
// @Failure 404 {object} map[string]string "Shift not found"
// @Security BearerAuth
// @Router /departments/{departmentID}/shifts/{shiftID} [delete]
func (h *shiftHandler) deleteShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")
	shiftID := c.Param("shiftID")

	capability := middleware.GetCapabilityFromContext(c)
	if err := h.shiftService.DeleteShift(c.Request.Context(), capability, departmentID, shiftID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// clearMemberDate godoc
// @Summary Clear a member's shifts on one date
// @Description Deletes every shift of one member reference on one date and reports the count
// @Tags shifts
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Param   member query string true "Member reference"
// @Param   date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Insufficient access"
// @Security BearerAuth
// @Router /departments/{departmentID}/shifts [delete]
func (h *shiftHandler) clearMemberDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")

	memberRef := c.Query("member")
	if memberRef == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "member query parameter is required"})
		return
	}
	date, err := time.Parse(dto.DateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as " + dto.DateLayout})
		return
	}

	capability := middleware.GetCapabilityFromContext(c)
	deleted, err := h.shiftService.DeleteShiftsForMemberDate(c.Request.Context(), capability, departmentID, memberRef, date)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// listWorkTypes godoc
// @Summary List work types
// @Description Returns the predefined work types plus every custom label stored for the department
// @Tags shifts
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Success 200 {object} map[string][]string
// @Failure 403 {object} map[string]string "Insufficient access"
// @Security BearerAuth
// @Router /departments/{departmentID}/work-types [get]
func (h *shiftHandler) listWorkTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")

	capability := middleware.GetCapabilityFromContext(c)
	workTypes, err := h.shiftService.ListWorkTypes(c.Request.Context(), capability, departmentID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workTypes": workTypes})
}

// parseUpsertShift converts the wire payload into the service input,
// rejecting malformed dates and timestamps at the boundary.
func parseUpsertShift(departmentID string, shiftID *string, req dto.UpsertShiftRequest) (dto.UpsertShiftInput, error) {
	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return dto.UpsertShiftInput{}, &timeParseError{field: "date", layout: dto.DateLayout}
	}

	input := dto.UpsertShiftInput{
		ShiftID:      shiftID,
		DepartmentID: departmentID,
		MemberID:     req.MemberID,
		Date:         date,
		WorkType:     req.WorkType,
		FoodPayment:  req.FoodPayment,
	}

	for _, f := range []struct {
		name  string
		raw   *string
		field **time.Time
	}{
		{"shiftStart", req.ShiftStart, &input.ShiftStart},
		{"shiftEnd", req.ShiftEnd, &input.ShiftEnd},
		{"overtimeStart", req.OvertimeStart, &input.OvertimeStart},
		{"overtimeEnd", req.OvertimeEnd, &input.OvertimeEnd},
	} {
		if f.raw == nil || *f.raw == "" {
			continue
		}
		t, err := time.Parse(dto.DateTimeLayout, *f.raw)
		if err != nil {
			return dto.UpsertShiftInput{}, &timeParseError{field: f.name, layout: dto.DateTimeLayout}
		}
		*f.field = &t
	}
	return input, nil
}

// parseShiftRangeQuery reads the list/export query parameters.
func parseShiftRangeQuery(c *gin.Context) (dto.ShiftRangeQuery, error) {
	from, err := time.Parse(dto.DateLayout, c.Query("from"))
	if err != nil {
		return dto.ShiftRangeQuery{}, &timeParseError{field: "from", layout: dto.DateLayout}
	}
	to, err := time.Parse(dto.DateLayout, c.Query("to"))
	if err != nil {
		return dto.ShiftRangeQuery{}, &timeParseError{field: "to", layout: dto.DateLayout}
	}

	foodPayment := c.DefaultQuery("foodPayment", "ALL")
	return dto.ShiftRangeQuery{
		DepartmentID: c.Param("departmentID"),
		From:         from,
		To:           to,
		MemberRefs:   splitCSVParam(c.Query("members")),
		WorkTypes:    splitCSVParam(c.Query("workTypes")),
		FoodPayment:  strings.ToUpper(foodPayment),
	}, nil
}

func splitCSVParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type timeParseError struct {
	field  string
	layout string
}

func (e *timeParseError) Error() string {
	return e.field + " must be formatted as " + e.layout
}
