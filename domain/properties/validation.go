package properties

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
)

// CoerceValue checks value against datatype and returns its canonical text form.
// An empty value is allowed for every datatype.
func CoerceValue(datatype catalog.DataType, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}

	switch datatype {
	case catalog.DataTypeString:
		return value, nil
	case catalog.DataTypeInteger:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return "", invalidValue(datatype, value)
		}
		return strconv.FormatInt(n, 10), nil
	case catalog.DataTypeFloat:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return "", invalidValue(datatype, value)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case catalog.DataTypeBoolean:
		switch strings.ToLower(trimmed) {
		case "true", "t", "yes", "y", "1":
			return "true", nil
		case "false", "f", "no", "n", "0":
			return "false", nil
		}
		return "", invalidValue(datatype, value)
	default:
		return "", apperror.NewValidation("datatype", fmt.Sprintf("unknown datatype %q", datatype))
	}
}

func invalidValue(datatype catalog.DataType, value string) error {
	return apperror.ErrInvalidPropertyValue.
		WithMessage(fmt.Sprintf("The value %q is not valid for the datatype %s", value, datatype)).
		WithDetails(map[string]any{"datatype": string(datatype)})
}

func validateType(req PropertyTypeRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperror.NewValidation("name", "name is required")
	}
	if !req.Datatype.Valid() {
		return apperror.NewValidation("datatype", fmt.Sprintf("datatype must be one of INTEGER, FLOAT, STRING, BOOLEAN, got %q", req.Datatype))
	}
	return nil
}
