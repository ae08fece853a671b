package employee

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Violation codes. NotANumber and Precision are mutually exclusive for
// a single input: a value that does not parse at all never also gets
// the precision violation.
const (
	ViolationFormat     = "format"
	ViolationNotANumber = "not_a_number"
	ViolationNegative   = "negative"
	ViolationPrecision  = "precision"
)

type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

var (
	digitsOnlyRe = regexp.MustCompile(`^[0-9]+$`)
	nameRe       = regexp.MustCompile(`^[A-Za-z ]+$`)
)

// ValidateEmployeeFields checks field syntax before anything touches
// storage. Pure and deterministic: every failing rule appends exactly
// one violation, in field order badge, name, phone, rate, and no rule
// short-circuits the rest.
func ValidateEmployeeFields(badge, name, phone, rate string, numericBadge bool) []Violation {
	var violations []Violation

	if numericBadge {
		if !digitsOnlyRe.MatchString(badge) {
			violations = append(violations, Violation{
				Field:   "badge_number",
				Code:    ViolationFormat,
				Message: "badge_number must contain digits only",
			})
		}
	} else if badge == "" || badge != strings.TrimSpace(badge) {
		violations = append(violations, Violation{
			Field:   "badge_number",
			Code:    ViolationFormat,
			Message: "badge_number must be non-empty without surrounding whitespace",
		})
	}

	if !nameRe.MatchString(name) {
		violations = append(violations, Violation{
			Field:   "name",
			Code:    ViolationFormat,
			Message: "name must contain letters and spaces only",
		})
	}

	if !digitsOnlyRe.MatchString(phone) {
		violations = append(violations, Violation{
			Field:   "phone",
			Code:    ViolationFormat,
			Message: "phone must contain digits only",
		})
	}

	if v := validateHourlyRate(rate); v != nil {
		violations = append(violations, *v)
	}

	return violations
}

func validateHourlyRate(rate string) *Violation {
	d, err := decimal.NewFromString(rate)
	if err != nil {
		return &Violation{
			Field:   "hourly_rate",
			Code:    ViolationNotANumber,
			Message: "hourly_rate must be a number",
		}
	}
	if d.IsNegative() {
		return &Violation{
			Field:   "hourly_rate",
			Code:    ViolationNegative,
			Message: "hourly_rate must not be negative",
		}
	}
	if d.Exponent() < -2 {
		return &Violation{
			Field:   "hourly_rate",
			Code:    ViolationPrecision,
			Message: "hourly_rate must have at most 2 decimal places",
		}
	}
	return nil
}
