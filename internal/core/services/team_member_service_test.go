package services_test

import (
	"context"
	"testing"

	"github.com/bahadricoz/shift/internal/apperrors"
	"github.com/bahadricoz/shift/internal/core/domain"
	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/bahadricoz/shift/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type TeamMemberServiceTestSuite struct {
	suite.Suite
	mockMemberRepo *MockTeamMemberRepository
	mockDeptRepo   *MockDepartmentRepository
	service        portssvc.TeamMemberService

	departmentID string
	adminCap     domain.Capability
}

func (suite *TeamMemberServiceTestSuite) SetupTest() {
	suite.mockMemberRepo = new(MockTeamMemberRepository)
	suite.mockDeptRepo = new(MockDepartmentRepository)
	suite.service = services.NewTeamMemberService(suite.mockMemberRepo, suite.mockDeptRepo)

	suite.departmentID = uuid.NewString()
	suite.adminCap = domain.Capability{Role: domain.RoleAdmin, DepartmentID: suite.departmentID}
}

func (suite *TeamMemberServiceTestSuite) TestAddTeamMember_Success() {
	ctx := context.Background()
	suite.mockDeptRepo.On("FindDepartmentByID", ctx, suite.departmentID).
		Return(&domain.Department{DepartmentID: suite.departmentID}, nil).Once()
	suite.mockMemberRepo.On("SaveTeamMember", ctx, mock.MatchedBy(func(m domain.TeamMember) bool {
		return m.DepartmentID == suite.departmentID && m.MemberRef == "TM-1" && m.DisplayName == "Alice" && m.MemberID != ""
	})).Return(nil).Once()

	member, err := suite.service.AddTeamMember(ctx, suite.adminCap, suite.departmentID, " TM-1 ", " Alice ")

	suite.Require().NoError(err)
	suite.Equal("TM-1", member.MemberRef)
	suite.Equal("Alice", member.DisplayName)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *TeamMemberServiceTestSuite) TestAddTeamMember_EmptyRefRejected() {
	member, err := suite.service.AddTeamMember(context.Background(), suite.adminCap, suite.departmentID, "  ", "Alice")

	suite.Require().Error(err)
	suite.Nil(member)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "SaveTeamMember", mock.Anything, mock.Anything)
}

func (suite *TeamMemberServiceTestSuite) TestAddTeamMember_ViewerForbidden() {
	viewerCap := domain.Capability{Role: domain.RoleViewer, DepartmentID: suite.departmentID}

	member, err := suite.service.AddTeamMember(context.Background(), viewerCap, suite.departmentID, "TM-1", "Alice")

	suite.Require().Error(err)
	suite.Nil(member)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TeamMemberServiceTestSuite) TestEditTeamMember_Success() {
	ctx := context.Background()
	memberID := uuid.NewString()
	existing := &domain.TeamMember{
		MemberID:     memberID,
		DepartmentID: suite.departmentID,
		MemberRef:    "TM-1",
		DisplayName:  "Alice",
	}

	suite.mockMemberRepo.On("FindTeamMemberByID", ctx, memberID).Return(existing, nil).Once()
	suite.mockMemberRepo.On("UpdateTeamMember", ctx, mock.MatchedBy(func(m domain.TeamMember) bool {
		return m.MemberID == memberID && m.MemberRef == "TM-2" && m.DisplayName == "Alice B."
	})).Return(nil).Once()

	member, err := suite.service.EditTeamMember(ctx, suite.adminCap, suite.departmentID, memberID, "TM-2", "Alice B.")

	suite.Require().NoError(err)
	suite.Equal("TM-2", member.MemberRef)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *TeamMemberServiceTestSuite) TestEditTeamMember_WrongDepartmentHidden() {
	ctx := context.Background()
	memberID := uuid.NewString()
	foreign := &domain.TeamMember{MemberID: memberID, DepartmentID: uuid.NewString()}

	suite.mockMemberRepo.On("FindTeamMemberByID", ctx, memberID).Return(foreign, nil).Once()

	member, err := suite.service.EditTeamMember(ctx, suite.adminCap, suite.departmentID, memberID, "TM-2", "Alice")

	suite.Require().Error(err)
	suite.Nil(member)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "UpdateTeamMember", mock.Anything, mock.Anything)
}

func (suite *TeamMemberServiceTestSuite) TestRemoveTeamMember_Success() {
	ctx := context.Background()
	memberID := uuid.NewString()
	existing := &domain.TeamMember{MemberID: memberID, DepartmentID: suite.departmentID}

	suite.mockMemberRepo.On("FindTeamMemberByID", ctx, memberID).Return(existing, nil).Once()
	suite.mockMemberRepo.On("DeleteTeamMember", ctx, memberID).Return(nil).Once()

	err := suite.service.RemoveTeamMember(ctx, suite.adminCap, suite.departmentID, memberID)

	suite.Require().NoError(err)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *TeamMemberServiceTestSuite) TestListTeamMembers_NilBecomesEmpty() {
	ctx := context.Background()
	viewerCap := domain.Capability{Role: domain.RoleViewer, DepartmentID: suite.departmentID}

	suite.mockMemberRepo.On("ListTeamMembersByDepartment", ctx, suite.departmentID).
		Return([]domain.TeamMember(nil), nil).Once()

	members, err := suite.service.ListTeamMembers(ctx, viewerCap, suite.departmentID)

	suite.Require().NoError(err)
	suite.NotNil(members)
	suite.Empty(members)
}

func TestTeamMemberServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TeamMemberServiceTestSuite))
}
