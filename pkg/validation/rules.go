package validation

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout - формат дат во всех DTO.
const DateLayout = "2006-01-02"

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("date_ymd", isDateYMD); err != nil {
		return err
	}
	return nil
}

// isDateYMD - строка вида 2006-01-02
func isDateYMD(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}
