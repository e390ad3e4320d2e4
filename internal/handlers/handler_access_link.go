package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bahadricoz/shift/internal/core/domain"
	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/bahadricoz/shift/internal/dto"
	"github.com/bahadricoz/shift/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accessLinkHandler handles HTTP requests related to access links.
type accessLinkHandler struct {
	accessService portssvc.AccessService
}

func newAccessLinkHandler(as portssvc.AccessService) *accessLinkHandler {
	return &accessLinkHandler{accessService: as}
}

// registerAccessLinkRoutes registers bootstrap and access link routes.
func registerAccessLinkRoutes(rg *gin.RouterGroup, accessService portssvc.AccessService) {
	h := newAccessLinkHandler(accessService)

	rg.POST("/bootstrap", h.bootstrap)

	links := rg.Group("/departments/:departmentID/access-links")
	{
		links.POST("", h.issueAccessLink)
		links.GET("", h.listAccessLinks)
		links.DELETE("/:linkID", h.revokeAccessLink)
	}
}

// bootstrap godoc
// @Summary Bootstrap the first department
// @Description Creates the first department with its initial admin and viewer links; open only while no access links exist
// @Tags access-links
// @Accept  json
// @Produce  json
// @Param   bootstrap body dto.BootstrapRequest true "Bootstrap details"
// @Success 201 {object} dto.BootstrapResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Bootstrap closed"
// @Router /bootstrap [post]
func (h *accessLinkHandler) bootstrap(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BootstrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Bootstrap", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	capability := middleware.GetCapabilityFromContext(c)
	department, links, err := h.accessService.Bootstrap(c.Request.Context(), capability, req.DepartmentName)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	resp := dto.BootstrapResponse{Department: dto.ToDepartmentResponse(department)}
	for i := range links {
		resp.Links = append(resp.Links, dto.ToAccessLinkResponse(&links[i]))
	}
	c.JSON(http.StatusCreated, resp)
}

// issueAccessLink godoc
// @Summary Issue an access link
// @Description Mints a new bearer token scoped to a department
// @Tags access-links
// @Accept  json
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Param   link body dto.IssueAccessLinkRequest true "Link details"
// @Success 201 {object} dto.AccessLinkResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Insufficient access"
// @Failure 404 {object} map[string]string "Department not found"
// @Security BearerAuth
// @Router /departments/{departmentID}/access-links [post]
func (h *accessLinkHandler) issueAccessLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")

	var req dto.IssueAccessLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueAccessLink", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	capability := middleware.GetCapabilityFromContext(c)
	link, err := h.accessService.IssueAccessLink(c.Request.Context(), capability, departmentID, domain.Role(req.Role), req.Label)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccessLinkResponse(link))
}

// listAccessLinks godoc
// @Summary List access links
// @Description Lists a department's links including token values, for re-display by admins
// @Tags access-links
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Success 200 {object} dto.ListAccessLinksResponse
// @Failure 403 {object} map[string]string "Insufficient access"
// @Security BearerAuth
// @Router /departments/{departmentID}/access-links [get]
func (h *accessLinkHandler) listAccessLinks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")

	capability := middleware.GetCapabilityFromContext(c)
	links, err := h.accessService.ListAccessLinks(c.Request.Context(), capability, departmentID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccessLinksResponse(links))
}

// revokeAccessLink godoc
// @Summary Revoke an access link
// @Description Deletes a token; it stops resolving on the next request
// @Tags access-links
// @Param   departmentID path string true "Department ID"
// @Param   linkID path string true "Link ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Insufficient access"
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /departments/{departmentID}/access-links/{linkID} [delete]
func (h *accessLinkHandler) revokeAccessLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")
	linkID := c.Param("linkID")

	capability := middleware.GetCapabilityFromContext(c)
	if err := h.accessService.RevokeAccessLink(c.Request.Context(), capability, departmentID, linkID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
