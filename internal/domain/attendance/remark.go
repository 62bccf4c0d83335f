package attendance

import (
	"encoding/json"
	"fmt"
	"strings"
)

type RemarkKind int

const (
	RemarkNone RemarkKind = iota
	RemarkPredefined
	RemarkCustom
)

func (k RemarkKind) String() string {
	switch k {
	case RemarkPredefined:
		return "predefined"
	case RemarkCustom:
		return "custom"
	default:
		return "none"
	}
}

const (
	RemarkEmergencyLeave = "Emergency Leave"
	RemarkAMLeave        = "AM Leave"
	RemarkPMLeave        = "PM Leave"

	// RemarkSpecifyOther is the option a client sends when the text is in other_remarks.
	RemarkSpecifyOther = "Specify other remark"

	customRemarkMin = 2
	customRemarkMax = 100
)

var PredefinedRemarks = []string{RemarkEmergencyLeave, RemarkAMLeave, RemarkPMLeave}

// Remark is either absent, one of PredefinedRemarks, or free text.
type Remark struct {
	kind RemarkKind
	text string
}

func NoRemark() Remark {
	return Remark{}
}

func PredefinedRemark(value string) (Remark, error) {
	for _, p := range PredefinedRemarks {
		if p == value {
			return Remark{kind: RemarkPredefined, text: value}, nil
		}
	}
	return Remark{}, fmt.Errorf("%q is not a predefined remark", value)
}

func CustomRemark(text string) (Remark, error) {
	text = strings.TrimSpace(text)
	if n := len([]rune(text)); n < customRemarkMin || n > customRemarkMax {
		return Remark{}, fmt.Errorf("custom remark must be between %d and %d characters", customRemarkMin, customRemarkMax)
	}
	return Remark{kind: RemarkCustom, text: text}, nil
}

// ParseRemark resolves the (remark, other) pair sent by clients.
// Free text in other wins, an empty remark means none.
func ParseRemark(remark, other *string) (Remark, error) {
	if other != nil && strings.TrimSpace(*other) != "" {
		return CustomRemark(*other)
	}
	if remark == nil || strings.TrimSpace(*remark) == "" {
		return NoRemark(), nil
	}
	if *remark == RemarkSpecifyOther {
		return Remark{}, fmt.Errorf("other remark is required when %q is selected", RemarkSpecifyOther)
	}
	return PredefinedRemark(*remark)
}

// RemarkFromStored rebuilds a remark from its nullable column value.
func RemarkFromStored(value *string) Remark {
	if value == nil || *value == "" {
		return NoRemark()
	}
	if r, err := PredefinedRemark(*value); err == nil {
		return r
	}
	return Remark{kind: RemarkCustom, text: *value}
}

func (r Remark) Kind() RemarkKind {
	return r.kind
}

func (r Remark) Text() string {
	return r.text
}

// IsLeave reports whether the remark marks a full or partial day of leave.
func (r Remark) IsLeave() bool {
	return r.kind == RemarkPredefined
}

// Value is the nullable column value.
func (r Remark) Value() *string {
	if r.kind == RemarkNone {
		return nil
	}
	text := r.text
	return &text
}

func (r Remark) MarshalJSON() ([]byte, error) {
	if r.kind == RemarkNone {
		return []byte("null"), nil
	}
	return json.Marshal(r.text)
}
