package dto

import (
	"time"

	"github.com/bahadricoz/shift/internal/core/domain"
)

// CreateTeamMemberRequest is the payload for adding a member to a department.
type CreateTeamMemberRequest struct {
	MemberRef   string `json:"teamMemberID" binding:"required"` // Human-assigned id, unique per department
	DisplayName string `json:"teamMember" binding:"required"`
}

// UpdateTeamMemberRequest is the payload for editing a member.
type UpdateTeamMemberRequest struct {
	MemberRef   string `json:"teamMemberID" binding:"required"`
	DisplayName string `json:"teamMember" binding:"required"`
}

// TeamMemberResponse is the API representation of a team member.
type TeamMemberResponse struct {
	MemberID     string    `json:"memberID"`
	DepartmentID string    `json:"departmentID"`
	MemberRef    string    `json:"teamMemberID"`
	DisplayName  string    `json:"teamMember"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListTeamMembersResponse wraps a list of team members.
type ListTeamMembersResponse struct {
	Members []TeamMemberResponse `json:"members"`
}

func ToTeamMemberResponse(m *domain.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		MemberID:     m.MemberID,
		DepartmentID: m.DepartmentID,
		MemberRef:    m.MemberRef,
		DisplayName:  m.DisplayName,
		CreatedAt:    m.CreatedAt,
	}
}

func ToListTeamMembersResponse(members []domain.TeamMember) ListTeamMembersResponse {
	resp := ListTeamMembersResponse{Members: make([]TeamMemberResponse, 0, len(members))}
	for i := range members {
		resp.Members = append(resp.Members, ToTeamMemberResponse(&members[i]))
	}
	return resp
}
