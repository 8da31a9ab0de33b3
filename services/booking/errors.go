package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FormErrorKey holds form-level (not field-level) errors.
const FormErrorKey = "submit"

const MsgPriceUnavailable = "This villa has no listed price, so it cannot be booked online."

var (
	ErrWrongStep        = errors.New("action not allowed on the current booking step")
	ErrPriceUnavailable = errors.New("listing has no price")
)

// ValidationError lists every field that failed a step boundary check.
type ValidationError struct {
	Step   Step
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s step invalid: %s", e.Step, strings.Join(names, ", "))
}
