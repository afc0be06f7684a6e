package services

import (
	"regexp"
	"strings"

	"github.com/formpilot/autofill-backend/internal/dtos"
)

// The prompt asks the model to enforce the field-type rules, but the model
// only complies best-effort. sanitizeValues re-checks the mechanical rules
// and blanks any value that violates them: an empty string beats a wrong
// value. Fields that match no known class pass through untouched.

var (
	phoneRe = regexp.MustCompile(`^[0-9]{8,}$`)
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type fieldClass int

const (
	classNone fieldClass = iota
	classPhone
	classDate
	classURL
	classEmail
	classGender
)

// classify inspects the descriptor's attributes the same way the prompt
// frames its rules: by what the field calls itself. Matching is on whole
// tokens so "candidate" never reads as a date field.
func classify(f dtos.FormField) fieldClass {
	hint := strings.ToLower(f.Type + " " + f.Name + " " + f.ID + " " + f.Label + " " + f.Placeholder)
	tokens := map[string]bool{}
	for _, tok := range strings.FieldsFunc(hint, func(r rune) bool {
		return r < 'a' || r > 'z'
	}) {
		tokens[tok] = true
	}

	switch {
	case f.Type == "tel" || tokens["phone"] || tokens["mobile"]:
		return classPhone
	case f.Type == "date" || tokens["date"] || tokens["dob"]:
		return classDate
	case f.Type == "url" || tokens["url"] || tokens["linkedin"] || tokens["website"]:
		return classURL
	case f.Type == "email" || tokens["email"]:
		return classEmail
	case tokens["gender"]:
		return classGender
	default:
		return classNone
	}
}

func valid(class fieldClass, value string) bool {
	switch class {
	case classPhone:
		return phoneRe.MatchString(value)
	case classDate:
		return dateRe.MatchString(value)
	case classURL:
		return strings.HasPrefix(value, "http") || strings.HasPrefix(value, "www")
	case classEmail:
		return emailRe.MatchString(value)
	case classGender:
		return value == "Male" || value == "Female" || value == "Other"
	default:
		return true
	}
}

// sanitizeValues blanks values that fail their field's rule. values must be
// aligned to fields (one entry per field, same order).
func sanitizeValues(fields []dtos.FormField, values []dtos.FieldValue) {
	for i := range values {
		if i >= len(fields) || values[i].Value == "" {
			continue
		}
		if !valid(classify(fields[i]), values[i].Value) {
			values[i].Value = ""
		}
	}
}
