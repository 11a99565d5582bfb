// Package wizard validates multi-step forms one step at a time. Submitting
// step n re-checks every step before it.
package wizard

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrUnknownStep = errors.New("unknown wizard step")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type Step struct {
	Title string
	// Fields are Go field paths as understood by validator.StructPartial,
	// e.g. "ListingForm.Title" for promoted fields.
	Fields []string
}

type Definition struct {
	Name    string
	Steps   []Step
	newForm func() any
}

// NewForm returns a pointer to an empty form struct for this wizard.
func (d Definition) NewForm() any {
	return d.newForm()
}

// ValidationError lists failing fields keyed by their json name. Step is
// the first (1-based) step that has a failing field.
type ValidationError struct {
	Step   int
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("step %d: invalid fields: %s", e.Step, strings.Join(names, ", "))
}

// Validate checks every field required by steps 1..step.
func (d Definition) Validate(step int, form any) error {
	if step < 1 || step > len(d.Steps) {
		return fmt.Errorf("%w: %d (wizard %q has %d steps)", ErrUnknownStep, step, d.Name, len(d.Steps))
	}

	var verr *ValidationError
	for i := 0; i < step; i++ {
		fields := d.Steps[i].Fields
		if len(fields) == 0 {
			continue
		}
		err := validate.StructPartial(form, fields...)
		if err == nil {
			continue
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		if verr == nil {
			verr = &ValidationError{Step: i + 1, Fields: map[string]string{}}
		}
		for _, fe := range fieldErrs {
			verr.Fields[fe.Field()] = fe.Tag()
		}
	}

	if verr != nil {
		return verr
	}
	return nil
}

// ValidateAll checks the whole form, as done on final submission.
func (d Definition) ValidateAll(form any) error {
	return d.Validate(len(d.Steps), form)
}
