package domain

import "strings"

// CustomWorkTypePrefix marks free-form labels that fall outside the
// predefined set. The prefix exists only in the serialized form; in memory a
// custom label is the tagged variant below.
const CustomWorkTypePrefix = "CUSTOM: "

// Predefined work type labels.
const (
	WorkTypeOffice      = "Office"
	WorkTypeRemote      = "Remote"
	WorkTypeReport      = "Report"
	WorkTypeAnnualLeave = "Annual Leave"
	WorkTypeOff         = "OFF"
)

// PredefinedWorkTypes lists the recognized labels in display order.
var PredefinedWorkTypes = []string{
	WorkTypeOffice,
	WorkTypeRemote,
	WorkTypeReport,
	WorkTypeAnnualLeave,
	WorkTypeOff,
}

var predefinedWorkTypes = map[string]struct{}{
	WorkTypeOffice:      {},
	WorkTypeRemote:      {},
	WorkTypeReport:      {},
	WorkTypeAnnualLeave: {},
	WorkTypeOff:         {},
}

// WorkType is a tagged variant: either one of the predefined labels or a
// custom free-text label.
type WorkType struct {
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// IsPredefinedWorkType reports whether name is one of the recognized labels.
func IsPredefinedWorkType(name string) bool {
	_, ok := predefinedWorkTypes[name]
	return ok
}

// ParseWorkTypeLabel converts the serialized label back into the variant.
// It fails (ok=false) for empty labels and for labels outside the predefined
// set that lack the custom prefix.
func ParseWorkTypeLabel(label string) (WorkType, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return WorkType{}, false
	}
	if IsPredefinedWorkType(label) {
		return WorkType{Name: label}, true
	}
	if strings.HasPrefix(label, CustomWorkTypePrefix) {
		name := strings.TrimSpace(strings.TrimPrefix(label, CustomWorkTypePrefix))
		if name == "" {
			return WorkType{}, false
		}
		return WorkType{Name: name, Custom: true}, true
	}
	return WorkType{}, false
}

// NewCustomWorkType builds the custom variant from free text.
func NewCustomWorkType(name string) WorkType {
	return WorkType{Name: strings.TrimSpace(name), Custom: true}
}

// Label returns the serialized form stored and exported for this work type.
func (w WorkType) Label() string {
	if w.Custom {
		return CustomWorkTypePrefix + w.Name
	}
	return w.Name
}

// IsZero reports whether the variant is unset.
func (w WorkType) IsZero() bool {
	return w.Name == ""
}
