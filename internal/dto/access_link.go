package dto

import (
	"time"

	"github.com/bahadricoz/shift/internal/core/domain"
)

// IssueAccessLinkRequest is the payload for minting a new bearer token.
type IssueAccessLinkRequest struct {
	Role  string `json:"role" binding:"required,oneof=admin viewer"`
	Label string `json:"label"`
}

// BootstrapRequest creates the very first department together with its
// initial admin and viewer links.
type BootstrapRequest struct {
	DepartmentName string `json:"departmentName" binding:"required"`
}

// AccessLinkResponse is the API representation of an access link. The token
// is included: links are shareable capabilities and admins re-display them.
type AccessLinkResponse struct {
	LinkID       string    `json:"linkID"`
	Token        string    `json:"token"`
	DepartmentID string    `json:"departmentID"`
	Role         string    `json:"role"`
	Label        string    `json:"label"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListAccessLinksResponse wraps a list of access links.
type ListAccessLinksResponse struct {
	Links []AccessLinkResponse `json:"links"`
}

// BootstrapResponse returns the created department and its initial links.
type BootstrapResponse struct {
	Department DepartmentResponse   `json:"department"`
	Links      []AccessLinkResponse `json:"links"`
}

func ToAccessLinkResponse(l *domain.AccessLink) AccessLinkResponse {
	return AccessLinkResponse{
		LinkID:       l.LinkID,
		Token:        l.Token,
		DepartmentID: l.DepartmentID,
		Role:         string(l.Role),
		Label:        l.Label,
		CreatedAt:    l.CreatedAt,
	}
}

func ToListAccessLinksResponse(links []domain.AccessLink) ListAccessLinksResponse {
	resp := ListAccessLinksResponse{Links: make([]AccessLinkResponse, 0, len(links))}
	for i := range links {
		resp.Links = append(resp.Links, ToAccessLinkResponse(&links[i]))
	}
	return resp
}
