package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/bahadricoz/shift/internal/dto"
	"github.com/bahadricoz/shift/internal/middleware"
	"github.com/gin-gonic/gin"
)

// teamMemberHandler handles HTTP requests related to team members.
type teamMemberHandler struct {
	teamMemberService portssvc.TeamMemberService
}

func newTeamMemberHandler(ts portssvc.TeamMemberService) *teamMemberHandler {
	return &teamMemberHandler{teamMemberService: ts}
}

// registerTeamMemberRoutes registers routes related to team members.
func registerTeamMemberRoutes(rg *gin.RouterGroup, teamMemberService portssvc.TeamMemberService) {
	h := newTeamMemberHandler(teamMemberService)

	members := rg.Group("/departments/:departmentID/members")
	{
		members.POST("", h.addTeamMember)
		members.GET("", h.listTeamMembers)
		members.PUT("/:memberID", h.editTeamMember)
		members.DELETE("/:memberID", h.removeTeamMember)
	}
}

// addTeamMember godoc
// @Summary Add a team member
// @Description Registers a new member under a department
// @Tags team-members
// @Accept  json
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Param   member body dto.CreateTeamMemberRequest true "Member details"
// @Success 201 {object} dto.TeamMemberResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Insufficient access"
// @Failure 409 {object} map[string]string "Member reference already exists"
// @Security BearerAuth
// @Router /departments/{departmentID}/members [post]
func (h *teamMemberHandler) addTeamMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")

	var req dto.CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddTeamMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	capability := middleware.GetCapabilityFromContext(c)
	member, err := h.teamMemberService.AddTeamMember(c.Request.Context(), capability, departmentID, req.MemberRef, req.DisplayName)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamMemberResponse(member))
}

// listTeamMembers godoc
// @Summary List team members
// @Description Lists the members of a department ordered by reference
// @Tags team-members
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Success 200 {object} dto.ListTeamMembersResponse
// @Failure 403 {object} map[string]string "Insufficient access"
// @Security BearerAuth
// @Router /departments/{departmentID}/members [get]
func (h *teamMemberHandler) listTeamMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")

	capability := middleware.GetCapabilityFromContext(c)
	members, err := h.teamMemberService.ListTeamMembers(c.Request.Context(), capability, departmentID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTeamMembersResponse(members))
}

// editTeamMember godoc
// @Summary Edit a team member
// @Description Updates a member's reference and display name; shift snapshots follow
// @Tags team-members
// @Accept  json
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Param   memberID path string true "Member ID"
// @Param   member body dto.UpdateTeamMemberRequest true "Member details"
// @Success 200 {object} dto.TeamMemberResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Insufficient access"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 409 {object} map[string]string "Member reference already exists"
// @Security BearerAuth
// @Router /departments/{departmentID}/members/{memberID} [put]
func (h *teamMemberHandler) editTeamMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")
	memberID := c.Param("memberID")

	var req dto.UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditTeamMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	capability := middleware.GetCapabilityFromContext(c)
	member, err := h.teamMemberService.EditTeamMember(c.Request.Context(), capability, departmentID, memberID, req.MemberRef, req.DisplayName)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamMemberResponse(member))
}

// removeTeamMember godoc
// @Summary Remove a team member
// @Description Deletes a member; historical shifts keep their snapshot columns
// @Tags team-members
// @Param   departmentID path string true "Department ID"
// @Param   memberID path string true "Member ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Insufficient access"
// @Failure 404 {object} map[string]string "Member not found"
// @Security BearerAuth
// @Router /departments/{departmentID}/members/{memberID} [delete]
func (h *teamMemberHandler) removeTeamMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")
	memberID := c.Param("memberID")

	capability := middleware.GetCapabilityFromContext(c)
	if err := h.teamMemberService.RemoveTeamMember(c.Request.Context(), capability, departmentID, memberID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
