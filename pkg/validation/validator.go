package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator подключает go-playground/validator к echo.
// Ошибки называют поля так же, как они приходят в JSON: "branches[0].id".
type CustomValidator struct {
	validator *validator.Validate
}

// Validate реализует интерфейс echo.Validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New собирает валидатор с null-типами и правилами из rules.go.
func New() (*CustomValidator, error) {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	registerNullTypes(v)

	if err := registerRules(v); err != nil {
		return nil, fmt.Errorf("ошибка регистрации валидаторов: %w", err)
	}

	return &CustomValidator{validator: v}, nil
}

// jsonFieldName - имя из json-тега; поля без тега остаются с именем Go.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}
