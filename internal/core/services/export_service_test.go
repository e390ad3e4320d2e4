package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bahadricoz/shift/internal/apperrors"
	"github.com/bahadricoz/shift/internal/core/domain"
	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/bahadricoz/shift/internal/core/services"
	"github.com/bahadricoz/shift/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ExportServiceTestSuite struct {
	suite.Suite
	mockShiftRepo *MockShiftRepository
	service       portssvc.ExportService

	departmentID string
	viewerCap    domain.Capability
	query        dto.ShiftRangeQuery
}

func (suite *ExportServiceTestSuite) SetupTest() {
	suite.mockShiftRepo = new(MockShiftRepository)
	suite.service = services.NewExportService(suite.mockShiftRepo)

	suite.departmentID = "dept-1"
	suite.viewerCap = domain.Capability{Role: domain.RoleViewer, DepartmentID: suite.departmentID}
	suite.query = dto.ShiftRangeQuery{
		DepartmentID: suite.departmentID,
		From:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:           time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *ExportServiceTestSuite) TestExportShifts_EmptyYieldsHeaderOnly() {
	ctx := context.Background()
	suite.mockShiftRepo.On("ListShiftsForRange", ctx, mock.Anything).Return([]domain.Shift{}, nil).Once()

	payload, err := suite.service.ExportShifts(ctx, suite.viewerCap, suite.query)

	suite.Require().NoError(err)
	suite.Equal("date,team_member_id,team_member,work_type,food_payment,shift_start,shift_end,overtime_start,overtime_end\n", string(payload))
}

func (suite *ExportServiceTestSuite) TestExportShifts_RendersRow() {
	ctx := context.Background()
	start := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 5, 17, 30, 0, 0, time.UTC)
	shifts := []domain.Shift{{
		ShiftID:      "s1",
		DepartmentID: suite.departmentID,
		MemberRef:    "tm-7",
		MemberName:   "Alice Smith",
		Date:         time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		WorkType:     domain.WorkType{Name: domain.WorkTypeOffice},
		FoodPayment:  domain.FoodPaymentYes,
		ShiftStart:   &start,
		ShiftEnd:     &end,
	}}
	suite.mockShiftRepo.On("ListShiftsForRange", ctx, mock.Anything).Return(shifts, nil).Once()

	payload, err := suite.service.ExportShifts(ctx, suite.viewerCap, suite.query)

	suite.Require().NoError(err)
	expected := "date,team_member_id,team_member,work_type,food_payment,shift_start,shift_end,overtime_start,overtime_end\n" +
		"3/5/2025,tm-7,ALICE SMITH,OFFICE,YES,3/5/2025 9:00,3/5/2025 17:30,,\n"
	suite.Equal(expected, string(payload))
}

func (suite *ExportServiceTestSuite) TestExportShifts_MemberRefRendersAsStored() {
	ctx := context.Background()
	shifts := []domain.Shift{{
		ShiftID:     "s1",
		Date:        time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		MemberRef:   "tm-9b",
		MemberName:  "Bob",
		WorkType:    domain.WorkType{Name: domain.WorkTypeRemote},
		FoodPayment: domain.FoodPaymentNo,
	}}
	suite.mockShiftRepo.On("ListShiftsForRange", ctx, mock.Anything).Return(shifts, nil).Once()

	payload, err := suite.service.ExportShifts(ctx, suite.viewerCap, suite.query)

	suite.Require().NoError(err)
	suite.Contains(string(payload), "3/12/2025,tm-9b,BOB,REMOTE,NO,,,,\n")
}

func (suite *ExportServiceTestSuite) TestExportShifts_DeterministicOrder() {
	ctx := context.Background()
	nineAM := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	onePM := time.Date(2025, 3, 5, 13, 0, 0, 0, time.UTC)
	day1 := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)

	// Deliberately scrambled input order.
	shifts := []domain.Shift{
		{ShiftID: "d", Date: day2, MemberRef: "A", FoodPayment: domain.FoodPaymentNo, WorkType: domain.WorkType{Name: domain.WorkTypeOff}},
		{ShiftID: "c", Date: day1, MemberRef: "B", ShiftStart: &nineAM, ShiftEnd: &onePM, FoodPayment: domain.FoodPaymentNo, WorkType: domain.WorkType{Name: domain.WorkTypeOffice}},
		{ShiftID: "b", Date: day1, MemberRef: "A", FoodPayment: domain.FoodPaymentNo, WorkType: domain.WorkType{Name: domain.WorkTypeOffice}},
		{ShiftID: "a", Date: day1, MemberRef: "A", ShiftStart: &onePM, ShiftEnd: &onePM, FoodPayment: domain.FoodPaymentNo, WorkType: domain.WorkType{Name: domain.WorkTypeOffice}},
	}
	suite.mockShiftRepo.On("ListShiftsForRange", ctx, mock.Anything).Return(shifts, nil).Once()

	payload, err := suite.service.ExportShifts(ctx, suite.viewerCap, suite.query)

	suite.Require().NoError(err)
	// Date first, then member ref, timed rows before untimed ones, shift ID last.
	expected := "date,team_member_id,team_member,work_type,food_payment,shift_start,shift_end,overtime_start,overtime_end\n" +
		"3/5/2025,A,,OFFICE,NO,3/5/2025 13:00,3/5/2025 13:00,,\n" +
		"3/5/2025,A,,OFFICE,NO,,,,\n" +
		"3/5/2025,B,,OFFICE,NO,3/5/2025 9:00,3/5/2025 13:00,,\n" +
		"3/6/2025,A,,OFF,NO,,,,\n"
	suite.Equal(expected, string(payload))
}

func (suite *ExportServiceTestSuite) TestExportShifts_GlobalCapabilityForbidden() {
	payload, err := suite.service.ExportShifts(context.Background(), domain.Capability{Global: true}, suite.query)

	suite.Require().Error(err)
	suite.Nil(payload)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockShiftRepo.AssertNotCalled(suite.T(), "ListShiftsForRange", mock.Anything, mock.Anything)
}

func (suite *ExportServiceTestSuite) TestExportShifts_CustomWorkTypeKeepsPrefix() {
	ctx := context.Background()
	shifts := []domain.Shift{{
		ShiftID:     "s1",
		Date:        time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		MemberRef:   "TM-1",
		MemberName:  "Bob",
		WorkType:    domain.NewCustomWorkType("Inventory"),
		FoodPayment: domain.FoodPaymentNo,
	}}
	suite.mockShiftRepo.On("ListShiftsForRange", ctx, mock.Anything).Return(shifts, nil).Once()

	payload, err := suite.service.ExportShifts(ctx, suite.viewerCap, suite.query)

	suite.Require().NoError(err)
	suite.Contains(string(payload), "3/12/2025,TM-1,BOB,CUSTOM: INVENTORY,NO,,,,\n")
}

func TestExportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}
