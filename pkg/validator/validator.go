package validator

import (
	"fmt"

	playground "github.com/go-playground/validator/v10"
)

// Validator validates request payloads and domain structs using
// struct tags.
type Validator interface {
	Validate(interface{}) error
	Var(value interface{}, rules string) error
}

type validator struct {
	v *playground.Validate
}

func New() Validator {
	v := playground.New(playground.WithRequiredStructEnabled())
	return &validator{v: v}
}

func (val *validator) Validate(obj interface{}) error {
	if err := val.v.Struct(obj); err != nil {
		var errs playground.ValidationErrors
		if ok := asValidationErrors(err, &errs); ok && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("%s failed validation on %q", first.Field(), first.Tag())
		}
		return err
	}
	return nil
}

func (val *validator) Var(value interface{}, rules string) error {
	return val.v.Var(value, rules)
}

func asValidationErrors(err error, target *playground.ValidationErrors) bool {
	errs, ok := err.(playground.ValidationErrors)
	if ok {
		*target = errs
	}
	return ok
}
