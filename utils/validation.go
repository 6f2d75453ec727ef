package utils

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the enum tags used in request DTOs to gin's
// validator and makes field errors use json names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
			return entity.PaymentMethod(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			return entity.OrderStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("paymentstatus", func(fl validator.FieldLevel) bool {
			return entity.PaymentStatus(fl.Field().String()).Valid()
		})
	})
}

// BindJSON binds the body into dst and turns binding failures into a
// VALIDATION_ERROR carrying per-field messages.
func BindJSON(c *gin.Context, dst any) error {
	RegisterValidators()
	if err := c.ShouldBindJSON(dst); err != nil {
		return ValidationError(err)
	}
	return nil
}

func ValidationError(err error) *apperr.Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.New(apperr.Validation, "invalid request body")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return apperr.ValidationFields("invalid request", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be >= " + fe.Param()
	case "max", "lte":
		return "must be <= " + fe.Param()
	case "email":
		return "must be a valid email"
	case "paymentmethod":
		return "must be one of CASH, CARD_ONLINE, CARD_COURIER"
	case "orderstatus":
		return "unknown order status"
	case "paymentstatus":
		return "must be one of PENDING, PAID, FAILED, REFUNDED"
	default:
		return "is invalid"
	}
}
