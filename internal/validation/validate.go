package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/jonathan/groepsplan/internal/types"
)

const tagSum = "groepsindeling_sum"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	must(v.RegisterValidation("notblank", validators.NotBlank))
	must(v.RegisterValidation("vakgebied", func(fl validator.FieldLevel) bool {
		return types.Vakgebied(fl.Field().String()).Valid()
	}))
	must(v.RegisterValidation("challenge", func(fl validator.FieldLevel) bool {
		return types.Challenge(fl.Field().String()).Valid()
	}))
	must(v.RegisterValidation("startingpoint", func(fl validator.FieldLevel) bool {
		return types.StartingPoint(fl.Field().String()).Valid()
	}))

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(types.ScratchInputs)
		if in.Groepsindeling.Total() != in.AantalLeerlingen {
			sl.ReportError(in.Groepsindeling, "groepsindeling", "Groepsindeling", tagSum, "")
		}
	}, types.ScratchInputs{})

	return v
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("validation: register: %v", err))
	}
}

// ValidateScratch checks wizard inputs. It returns nil or an *InputError.
func ValidateScratch(in types.ScratchInputs) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	return toInputError(err, func(fe validator.FieldError) FieldError {
		if fe.Tag() == tagSum {
			return FieldError{
				Field:    "groepsindeling",
				Message:  fmt.Sprintf("basis + intensief + meer moet gelijk zijn aan aantalLeerlingen (%d)", in.AantalLeerlingen),
				Expected: in.AantalLeerlingen,
				Actual:   in.Groepsindeling.Total(),
			}
		}
		return describe(fe)
	})
}

// ValidateUpload checks upload-flow inputs. It returns nil or an *InputError.
func ValidateUpload(in types.UploadPromptInputs) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	return toInputError(err, describe)
}

func toInputError(err error, convert func(validator.FieldError) FieldError) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &InputError{Code: CodeInvalidInput, Cause: err}
	}

	out := &InputError{Cause: err}
	missing, mismatch := false, false
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "notblank":
			missing = true
		case tagSum:
			mismatch = true
		}
		out.Errors = append(out.Errors, convert(fe))
	}

	switch {
	case missing:
		out.Code = CodeRequiredFieldMissing
	case mismatch && len(verrs) == 1:
		out.Code = CodeSumMismatch
	default:
		out.Code = CodeInvalidInput
	}
	return out
}

// describe turns a validator failure into a FieldError keyed by the JSON path of the field.
func describe(fe validator.FieldError) FieldError {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	out := FieldError{Field: field, Actual: fe.Value()}
	switch fe.Tag() {
	case "required", "notblank":
		out.Message = "is verplicht"
		out.Actual = nil
	case "min":
		out.Message = fmt.Sprintf("moet minimaal %s zijn", fe.Param())
		out.Expected = ">= " + fe.Param()
	case "max":
		out.Message = fmt.Sprintf("mag maximaal %s zijn", fe.Param())
		out.Expected = "<= " + fe.Param()
	case "oneof":
		out.Message = fmt.Sprintf("moet een van %s zijn", fe.Param())
		out.Expected = strings.Fields(fe.Param())
	case "vakgebied", "challenge", "startingpoint":
		out.Message = fmt.Sprintf("onbekende waarde voor %s", fe.Field())
	default:
		out.Message = fmt.Sprintf("ongeldige waarde (%s)", fe.Tag())
	}
	return out
}
