package constellation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Error is always nil: the tag is new and the func is non-nil.
	_ = v.RegisterValidation("color", validateColor)
	v.RegisterStructValidation(validateRanges, Config{})
	return v
}

// validateColor accepts exactly what ParseColor accepts, so a colour that
// passes validation never falls back to grey when drawn.
func validateColor(fl validator.FieldLevel) bool {
	_, ok := ParseColor(fl.Field().String())
	return ok
}

// validateRanges rejects [min, max] pairs given in the wrong order.
func validateRanges(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	if c.NodeSizeRange[0] > c.NodeSizeRange[1] {
		sl.ReportError(c.NodeSizeRange, "NodeSizeRange", "NodeSizeRange", "ordered", "")
	}
	if c.EdgeWidthRange[0] > c.EdgeWidthRange[1] {
		sl.ReportError(c.EdgeWidthRange, "EdgeWidthRange", "EdgeWidthRange", "ordered", "")
	}
}

// Validate checks c for values the engine accepts but that are unlikely to
// be intended: a graph that cannot grow, probabilities outside [0, 1],
// inverted ranges or colours that fall back to grey. Every problem is
// reported, joined into one error. A nil result means the configuration
// looks sane. The simulation itself never calls Validate.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	issues := make([]error, 0, len(verrs))
	for _, e := range verrs {
		issues = append(issues, describeFieldError(e))
	}
	return errors.Join(issues...)
}

func describeFieldError(e validator.FieldError) error {
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: must be set", field)
	case "gt":
		return fmt.Errorf("%s: must be greater than %s, got %v", field, e.Param(), e.Value())
	case "gte":
		return fmt.Errorf("%s: must be at least %s, got %v", field, e.Param(), e.Value())
	case "lte":
		return fmt.Errorf("%s: must not exceed %s, got %v", field, e.Param(), e.Value())
	case "color":
		return fmt.Errorf("%s: %q is not a #rgb or #rrggbb colour", field, e.Value())
	case "ordered":
		return fmt.Errorf("%s: min is greater than max: %v", field, e.Value())
	default:
		return fmt.Errorf("%s: failed %s", field, e.Tag())
	}
}
