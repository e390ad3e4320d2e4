package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/bahadricoz/shift/internal/apperrors"
	"github.com/bahadricoz/shift/internal/core/domain"
	portsrepo "github.com/bahadricoz/shift/internal/core/ports/repositories"
	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/bahadricoz/shift/internal/dto"
	"github.com/bahadricoz/shift/internal/middleware"
)

// exportHeader is the fixed CSV column set, in order. Consumers key on these
// names, so the header never changes with the filters.
var exportHeader = []string{
	"date",
	"team_member_id",
	"team_member",
	"work_type",
	"food_payment",
	"shift_start",
	"shift_end",
	"overtime_start",
	"overtime_end",
}

// ExportSvc renders filtered shift rows as CSV. Output is deterministic:
// the same storage state and filters always produce byte-identical output.
type ExportSvc struct {
	shiftRepo portsrepo.ShiftRepository
}

// NewExportService creates a new ExportSvc.
func NewExportService(sr portsrepo.ShiftRepository) portssvc.ExportService {
	return &ExportSvc{shiftRepo: sr}
}

var _ portssvc.ExportService = (*ExportSvc)(nil)

// ExportShifts renders the matching shifts as a CSV byte stream. A query
// matching nothing still yields the header row.
func (s *ExportSvc) ExportShifts(ctx context.Context, capability domain.Capability, query dto.ShiftRangeQuery) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !capability.CanView(query.DepartmentID) {
		return nil, apperrors.NewForbiddenError("capability cannot export this department")
	}

	filter, err := buildRangeFilter(query)
	if err != nil {
		return nil, err
	}

	shifts, err := retryReadOnce(func() ([]domain.Shift, error) {
		return s.shiftRepo.ListShiftsForRange(ctx, filter)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load shifts for export: %w", err)
	}
	sortShiftsForOutput(shifts)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}
	for i := range shifts {
		if err := w.Write(exportRecord(&shifts[i])); err != nil {
			return nil, fmt.Errorf("failed to write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush export: %w", err)
	}

	logger.Info("Shifts exported",
		slog.String("department_id", query.DepartmentID),
		slog.Int("rows", len(shifts)))
	return buf.Bytes(), nil
}

// sortShiftsForOutput orders rows by date, then member reference, then shift
// start (absent starts last), then shift ID as the final tiebreaker. The
// total order makes listings and exports reproducible.
func sortShiftsForOutput(shifts []domain.Shift) {
	sort.SliceStable(shifts, func(i, j int) bool {
		a, b := &shifts[i], &shifts[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.MemberRef != b.MemberRef {
			return a.MemberRef < b.MemberRef
		}
		switch {
		case a.ShiftStart == nil && b.ShiftStart != nil:
			return false
		case a.ShiftStart != nil && b.ShiftStart == nil:
			return true
		case a.ShiftStart != nil && b.ShiftStart != nil && !a.ShiftStart.Equal(*b.ShiftStart):
			return a.ShiftStart.Before(*b.ShiftStart)
		}
		return a.ShiftID < b.ShiftID
	})
}

// exportRecord renders one row. team_member and work_type are upper-cased;
// team_member_id renders exactly as stored.
func exportRecord(s *domain.Shift) []string {
	return []string{
		exportDate(s.Date),
		s.MemberRef,
		strings.ToUpper(s.MemberName),
		strings.ToUpper(s.WorkType.Label()),
		string(s.FoodPayment),
		exportTimestamp(s.ShiftStart),
		exportTimestamp(s.ShiftEnd),
		exportTimestamp(s.OvertimeStart),
		exportTimestamp(s.OvertimeEnd),
	}
}

// exportDate renders M/D/YYYY without zero padding, which time.Format cannot
// express.
func exportDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// exportTimestamp renders M/D/YYYY H:MM, empty for an absent value.
func exportTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d/%d %d:%02d", int(t.Month()), t.Day(), t.Year(), t.Hour(), t.Minute())
}
