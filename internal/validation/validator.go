package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// optionalValue реализуют domain.Optional[T].
type optionalValue interface {
	ValidationValue() any
}

// checker — DTO с дополнительными проверками, которые не выразить тегами.
type checker interface {
	Check() error
}

// GetValidator возвращает общий экземпляр валидатора.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// в сообщениях об ошибках используем имена полей из JSON
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if v, ok := field.Interface().(optionalValue); ok {
				return v.ValidationValue()
			}
			return nil
		},
			domain.Optional[string]{},
			domain.Optional[int]{},
			domain.Optional[uint]{},
			domain.Optional[float64]{},
			domain.Optional[bool]{},
			domain.Optional[time.Time]{},
		)
	})

	return validate
}

// ValidateStruct проверяет теги validate и, если есть, метод Check.
// Любая ошибка оборачивает domain.ErrValidation.
func ValidateStruct(ctx context.Context, s interface{}) error {
	if err := GetValidator().StructCtx(ctx, s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			messages := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				messages = append(messages, describe(fe))
			}
			return domain.Invalid(strings.Join(messages, "; "))
		}
		return domain.Invalid(err.Error())
	}

	if c, ok := s.(checker); ok {
		if err := c.Check(); err != nil {
			return err
		}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "min", "gte", "gt":
		return fmt.Sprintf("%s must be at least %s (%s)", fe.Field(), fe.Param(), fe.Tag())
	case "max", "lte", "lt":
		return fmt.Sprintf("%s must be at most %s (%s)", fe.Field(), fe.Param(), fe.Tag())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}
