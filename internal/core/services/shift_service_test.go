package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bahadricoz/shift/internal/apperrors"
	"github.com/bahadricoz/shift/internal/core/domain"
	portsrepo "github.com/bahadricoz/shift/internal/core/ports/repositories"
	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/bahadricoz/shift/internal/core/services"
	"github.com/bahadricoz/shift/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ShiftRepository ---
type MockShiftRepository struct {
	mock.Mock
}

func (m *MockShiftRepository) CreateShift(ctx context.Context, shift domain.Shift) (*domain.Shift, error) {
	args := m.Called(ctx, shift)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) UpdateShift(ctx context.Context, shift domain.Shift) (*domain.Shift, error) {
	args := m.Called(ctx, shift)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error) {
	args := m.Called(ctx, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) ListShiftsForMemberDate(ctx context.Context, departmentID, memberRef string, date time.Time) ([]domain.Shift, error) {
	args := m.Called(ctx, departmentID, memberRef, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) ListShiftsForRange(ctx context.Context, filter portsrepo.ShiftRangeFilter) ([]domain.Shift, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) DeleteShift(ctx context.Context, shiftID string) error {
	args := m.Called(ctx, shiftID)
	return args.Error(0)
}

func (m *MockShiftRepository) DeleteShiftsForMemberDate(ctx context.Context, departmentID, memberRef string, date time.Time) (int64, error) {
	args := m.Called(ctx, departmentID, memberRef, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShiftRepository) ListDistinctWorkTypes(ctx context.Context, departmentID string) ([]string, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock TeamMemberRepository ---
type MockTeamMemberRepository struct {
	mock.Mock
}

func (m *MockTeamMemberRepository) SaveTeamMember(ctx context.Context, member domain.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamMemberRepository) FindTeamMemberByID(ctx context.Context, memberID string) (*domain.TeamMember, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) ListTeamMembersByDepartment(ctx context.Context, departmentID string) ([]domain.TeamMember, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) UpdateTeamMember(ctx context.Context, member domain.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamMemberRepository) DeleteTeamMember(ctx context.Context, memberID string) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

// --- Test Suite ---
type ShiftServiceTestSuite struct {
	suite.Suite
	mockShiftRepo  *MockShiftRepository
	mockMemberRepo *MockTeamMemberRepository
	service        portssvc.ShiftService

	departmentID string
	member       *domain.TeamMember
	adminCap     domain.Capability
	viewerCap    domain.Capability
	date         time.Time
}

func (suite *ShiftServiceTestSuite) SetupTest() {
	suite.mockShiftRepo = new(MockShiftRepository)
	suite.mockMemberRepo = new(MockTeamMemberRepository)
	suite.service = services.NewShiftService(suite.mockShiftRepo, suite.mockMemberRepo, services.NewShiftRules())

	suite.departmentID = uuid.NewString()
	suite.member = &domain.TeamMember{
		MemberID:     uuid.NewString(),
		DepartmentID: suite.departmentID,
		MemberRef:    "TM-7",
		DisplayName:  "Alice",
	}
	suite.adminCap = domain.Capability{Role: domain.RoleAdmin, DepartmentID: suite.departmentID}
	suite.viewerCap = domain.Capability{Role: domain.RoleViewer, DepartmentID: suite.departmentID}
	suite.date = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func (suite *ShiftServiceTestSuite) upsertInput() dto.UpsertShiftInput {
	return dto.UpsertShiftInput{
		DepartmentID: suite.departmentID,
		MemberID:     suite.member.MemberID,
		Date:         suite.date,
		WorkType:     "Office",
		FoodPayment:  "YES",
	}
}

func (suite *ShiftServiceTestSuite) TestUpsertShift_CreateSuccess() {
	ctx := context.Background()

	suite.mockMemberRepo.On("FindTeamMemberByID", ctx, suite.member.MemberID).Return(suite.member, nil).Once()
	suite.mockShiftRepo.On("ListShiftsForMemberDate", ctx, suite.departmentID, suite.member.MemberRef, suite.date).
		Return([]domain.Shift{}, nil).Once()
	suite.mockShiftRepo.On("CreateShift", ctx, mock.MatchedBy(func(s domain.Shift) bool {
		return s.DepartmentID == suite.departmentID &&
			s.MemberRef == suite.member.MemberRef &&
			s.MemberName == suite.member.DisplayName &&
			s.WorkType.Label() == "Office" &&
			s.FoodPayment == domain.FoodPaymentYes &&
			s.ShiftID != ""
	})).Return(&domain.Shift{ShiftID: "created"}, nil).Once()

	shift, err := suite.service.UpsertShift(ctx, suite.adminCap, suite.upsertInput())

	suite.Require().NoError(err)
	suite.Equal("created", shift.ShiftID)
	suite.mockShiftRepo.AssertExpectations(suite.T())
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *ShiftServiceTestSuite) TestUpsertShift_ViewerForbidden() {
	ctx := context.Background()

	shift, err := suite.service.UpsertShift(ctx, suite.viewerCap, suite.upsertInput())

	suite.Require().Error(err)
	suite.Nil(shift)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockShiftRepo.AssertNotCalled(suite.T(), "CreateShift", mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestUpsertShift_GlobalCapabilityForbidden() {
	ctx := context.Background()

	shift, err := suite.service.UpsertShift(ctx, domain.Capability{Global: true}, suite.upsertInput())

	suite.Require().Error(err)
	suite.Nil(shift)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ShiftServiceTestSuite) TestUpsertShift_ThirdShiftRejected() {
	ctx := context.Background()
	existing := []domain.Shift{{ShiftID: "a"}, {ShiftID: "b"}}

	suite.mockMemberRepo.On("FindTeamMemberByID", ctx, suite.member.MemberID).Return(suite.member, nil).Once()
	suite.mockShiftRepo.On("ListShiftsForMemberDate", ctx, suite.departmentID, suite.member.MemberRef, suite.date).
		Return(existing, nil).Once()

	shift, err := suite.service.UpsertShift(ctx, suite.adminCap, suite.upsertInput())

	suite.Require().Error(err)
	suite.Nil(shift)
	var violation *apperrors.RuleViolation
	suite.Require().ErrorAs(err, &violation)
	suite.Equal(apperrors.TooManyShiftsPerDay, violation.Reason)
	suite.mockShiftRepo.AssertNotCalled(suite.T(), "CreateShift", mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestUpsertShift_MemberInOtherDepartment() {
	ctx := context.Background()
	foreign := *suite.member
	foreign.DepartmentID = uuid.NewString()

	suite.mockMemberRepo.On("FindTeamMemberByID", ctx, suite.member.MemberID).Return(&foreign, nil).Once()

	shift, err := suite.service.UpsertShift(ctx, suite.adminCap, suite.upsertInput())

	suite.Require().Error(err)
	suite.Nil(shift)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ShiftServiceTestSuite) TestUpsertShift_EditKeepsIdentity() {
	ctx := context.Background()
	shiftID := uuid.NewString()
	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	current := &domain.Shift{ShiftID: shiftID, DepartmentID: suite.departmentID, CreatedAt: created}

	input := suite.upsertInput()
	input.ShiftID = &shiftID

	suite.mockMemberRepo.On("FindTeamMemberByID", ctx, suite.member.MemberID).Return(suite.member, nil).Once()
	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(current, nil).Once()
	suite.mockShiftRepo.On("ListShiftsForMemberDate", ctx, suite.departmentID, suite.member.MemberRef, suite.date).
		Return([]domain.Shift{{ShiftID: shiftID}, {ShiftID: "other"}}, nil).Once()
	suite.mockShiftRepo.On("UpdateShift", ctx, mock.MatchedBy(func(s domain.Shift) bool {
		return s.ShiftID == shiftID && s.CreatedAt.Equal(created)
	})).Return(current, nil).Once()

	_, err := suite.service.UpsertShift(ctx, suite.adminCap, input)

	suite.Require().NoError(err)
	suite.mockShiftRepo.AssertExpectations(suite.T())
}

func (suite *ShiftServiceTestSuite) TestUpsertShift_EditOntoFullDateRejected() {
	ctx := context.Background()
	shiftID := uuid.NewString()
	current := &domain.Shift{ShiftID: shiftID, DepartmentID: suite.departmentID, Date: suite.date}

	input := suite.upsertInput()
	input.ShiftID = &shiftID
	input.Date = suite.date.AddDate(0, 0, 1)

	suite.mockMemberRepo.On("FindTeamMemberByID", ctx, suite.member.MemberID).Return(suite.member, nil).Once()
	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(current, nil).Once()
	suite.mockShiftRepo.On("ListShiftsForMemberDate", ctx, suite.departmentID, suite.member.MemberRef, input.Date).
		Return([]domain.Shift{{ShiftID: "x"}, {ShiftID: "y"}}, nil).Once()

	shift, err := suite.service.UpsertShift(ctx, suite.adminCap, input)

	suite.Require().Error(err)
	suite.Nil(shift)
	var violation *apperrors.RuleViolation
	suite.Require().ErrorAs(err, &violation)
	suite.Equal(apperrors.TooManyShiftsPerDay, violation.Reason)
	suite.mockShiftRepo.AssertNotCalled(suite.T(), "UpdateShift", mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestDeleteShift_WrongDepartmentHidden() {
	ctx := context.Background()
	shiftID := uuid.NewString()
	foreignShift := &domain.Shift{ShiftID: shiftID, DepartmentID: uuid.NewString()}

	suite.mockShiftRepo.On("FindShiftByID", ctx, shiftID).Return(foreignShift, nil).Once()

	err := suite.service.DeleteShift(ctx, suite.adminCap, suite.departmentID, shiftID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockShiftRepo.AssertNotCalled(suite.T(), "DeleteShift", mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestDeleteShiftsForMemberDate_ReportsCount() {
	ctx := context.Background()

	suite.mockShiftRepo.On("DeleteShiftsForMemberDate", ctx, suite.departmentID, "TM-7", suite.date).
		Return(int64(2), nil).Once()

	deleted, err := suite.service.DeleteShiftsForMemberDate(ctx, suite.adminCap, suite.departmentID, "TM-7", suite.date)

	suite.Require().NoError(err)
	suite.Equal(int64(2), deleted)
}

func (suite *ShiftServiceTestSuite) TestListShiftsForRange_InvalidFoodPayment() {
	ctx := context.Background()
	query := dto.ShiftRangeQuery{
		DepartmentID: suite.departmentID,
		From:         suite.date,
		To:           suite.date,
		FoodPayment:  "SOMETIMES",
	}

	shifts, err := suite.service.ListShiftsForRange(ctx, suite.viewerCap, query)

	suite.Require().Error(err)
	suite.Nil(shifts)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ShiftServiceTestSuite) TestListShiftsForRange_InvertedRange() {
	ctx := context.Background()
	query := dto.ShiftRangeQuery{
		DepartmentID: suite.departmentID,
		From:         suite.date,
		To:           suite.date.AddDate(0, 0, -1),
	}

	_, err := suite.service.ListShiftsForRange(ctx, suite.viewerCap, query)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ShiftServiceTestSuite) TestListShiftsForRange_FoodPaymentFilterMapped() {
	ctx := context.Background()
	query := dto.ShiftRangeQuery{
		DepartmentID: suite.departmentID,
		From:         suite.date,
		To:           suite.date,
		FoodPayment:  "NO",
	}

	suite.mockShiftRepo.On("ListShiftsForRange", ctx, mock.MatchedBy(func(f portsrepo.ShiftRangeFilter) bool {
		return f.FoodPayment != nil && *f.FoodPayment == domain.FoodPaymentNo
	})).Return([]domain.Shift{}, nil).Once()

	shifts, err := suite.service.ListShiftsForRange(ctx, suite.viewerCap, query)

	suite.Require().NoError(err)
	suite.Empty(shifts)
	suite.mockShiftRepo.AssertExpectations(suite.T())
}

func (suite *ShiftServiceTestSuite) TestListWorkTypes_MergesPredefinedAndStored() {
	ctx := context.Background()

	suite.mockShiftRepo.On("ListDistinctWorkTypes", ctx, suite.departmentID).
		Return([]string{"CUSTOM: Inventory", "Office"}, nil).Once()

	workTypes, err := suite.service.ListWorkTypes(ctx, suite.viewerCap, suite.departmentID)

	suite.Require().NoError(err)
	suite.Equal([]string{"Office", "Remote", "Report", "Annual Leave", "OFF", "CUSTOM: Inventory"}, workTypes)
}

func TestShiftServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShiftServiceTestSuite))
}
