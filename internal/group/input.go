package group

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/commonshub/commonshub/internal/db/models"
)

// Input carries the submitted fields of a group form, the same shape
// for create and update.
type Input struct {
	Name      string `validate:"required,max=255"`
	Body      string `validate:"required"`
	GroupType string `validate:"required"`
	IsPublic  bool
	Address   string `validate:"max=255"`
	// Tags is the full requested tag set. nil means the form did not
	// submit tags and the stored set is left alone; an empty non-nil
	// slice clears it.
	Tags []string
	// Cover is the raw uploaded image, empty when none was uploaded.
	Cover []byte
}

// Messages shown next to the offending form field.
const (
	msgRequired    = "is required"
	msgTooLong     = "is too long"
	msgUnknownType = "is not a known group type"
)

// check validates the input and returns a field-error map, or nil when
// the input is acceptable. It runs before any persistence.
func check(validate *validator.Validate, in Input) ValidationError {
	fields := ValidationError{}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			fields["form"] = err.Error()
			return fields
		}

		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				fields[strings.ToLower(fe.Field())] = msgRequired
			case "max":
				fields[strings.ToLower(fe.Field())] = msgTooLong
			default:
				fields[strings.ToLower(fe.Field())] = "is invalid"
			}
		}
	}

	if in.GroupType != "" && !models.ValidGroupType(models.GroupType(in.GroupType)) {
		fields["grouptype"] = msgUnknownType
	}

	if len(fields) == 0 {
		return nil
	}

	return fields
}
