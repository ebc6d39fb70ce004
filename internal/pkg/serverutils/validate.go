package serverutils

import (
	"errors"
	"fmt"

	"workchat-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks a DTO's validate tags; violations surface as
// InvalidArgument so the error middleware maps them to 400.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0]
		return apperror.InvalidArgument(fmt.Sprintf("field %s failed on %s", field.Field(), field.Tag()))
	}
	return apperror.InvalidArgument(err.Error())
}
