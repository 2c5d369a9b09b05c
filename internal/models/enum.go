package models

import (
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/baharkarakas/library-backend/internal/errs"
	"github.com/baharkarakas/library-backend/internal/validate"
)

type labeled[T ~string] struct {
	value T
	label string
}

// labelSet is a closed set of enum values with their human-readable labels.
type labelSet[T ~string] []labeled[T]

func (s labelSet[T]) label(v T) string {
	for _, l := range s {
		if l.value == v {
			return l.label
		}
	}
	return string(v)
}

func (s labelSet[T]) valid(v T) bool {
	for _, l := range s {
		if l.value == v {
			return true
		}
	}
	return false
}

// parse accepts either the symbolic value or the label, ignoring case.
func (s labelSet[T]) parse(field, in string) (T, error) {
	in = strings.TrimSpace(in)
	for _, l := range s {
		if strings.EqualFold(in, string(l.value)) || strings.EqualFold(in, l.label) {
			return l.value, nil
		}
	}
	var zero T
	return zero, errs.Wrap(errs.ErrValidation, validate.Errs{{Field: field, Msg: "unknown value " + `"` + in + `"`}})
}

func marshalLabel(label string) ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(label)
}
