package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Collect drops nil results and returns nil when every check passed.
func Collect(checks ...*ErrField) Errs {
	var out Errs
	for _, c := range checks {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func MinInt(field string, v, min int64) *ErrField {
	if v < min {
		return &ErrField{Field: field, Msg: "must be >= " + strconv.FormatInt(min, 10)}
	}
	return nil
}

// Length counts runes, not bytes.
func Length(field, value string, min, max int) *ErrField {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return &ErrField{Field: field, Msg: "length must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)}
	}
	return nil
}

// Email only checks shape; an empty value is accepted.
func Email(field, value string) *ErrField {
	if value == "" {
		return nil
	}
	if !strings.Contains(value, "@") {
		return &ErrField{Field: field, Msg: "invalid email"}
	}
	return nil
}
