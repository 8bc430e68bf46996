package domain

import "strconv"

// Review represents a performance review document for an employee.
// Reviews are append-only: they are never updated or deleted once
// submitted. The document store holds an advisory employee_id field
// only; referential validity is checked by the caller before writes.
type Review struct {
	ID                  string         `json:"id"`
	EmployeeID          int64          `json:"employeeId"`
	ReviewDate          string         `json:"reviewDate"`
	ReviewerName        string         `json:"reviewerName"`
	OverallRating       float64        `json:"overallRating"`
	Strengths           []string       `json:"strengths"`
	AreasForImprovement []string       `json:"areasForImprovement"`
	Comments            string         `json:"comments"`
	GoalsForNextPeriod  []string       `json:"goalsForNextPeriod"`
	Extra               map[string]any `json:"extra,omitempty"`
}

// ReviewInput represents input for submitting a review. Rating and
// date ranges are deliberately not enforced at the store boundary;
// the read side coerces instead (permissive write, strict read).
type ReviewInput struct {
	ReviewDate          string         `json:"reviewDate" validate:"required,datetime=2006-01-02"`
	ReviewerName        string         `json:"reviewerName" validate:"required,min=1,max=200"`
	OverallRating       float64        `json:"overallRating"`
	Strengths           []string       `json:"strengths,omitempty"`
	AreasForImprovement []string       `json:"areasForImprovement,omitempty"`
	Comments            string         `json:"comments,omitempty"`
	GoalsForNextPeriod  []string       `json:"goalsForNextPeriod,omitempty"`
	Extra               map[string]any `json:"extra,omitempty"`
}

// CoerceRating converts a loosely-typed rating value from the document
// store into a float64, defaulting to zero when the value is missing
// or unparseable.
func CoerceRating(v any) float64 {
	switch r := v.(type) {
	case float64:
		return r
	case float32:
		return float64(r)
	case int:
		return float64(r)
	case int32:
		return float64(r)
	case int64:
		return float64(r)
	case string:
		f, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// CoerceStringSlice converts a loosely-typed array value from the
// document store into a string slice, dropping non-string elements.
// A scalar string is treated as a one-element list; some legacy
// documents stored single values unwrapped.
func CoerceStringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	case string:
		if s == "" {
			return nil
		}
		return []string{s}
	default:
		return nil
	}
}

// CoerceString converts a loosely-typed value into a string,
// defaulting to empty when the value is not a string.
func CoerceString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
