package handlers

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Binding tags for decimal.Decimal request fields.
const (
	tagDecimalNonNegative = "decimal_gte0"
	tagDecimalPositive    = "decimal_gt0"
)

var registerValidatorsOnce sync.Once

// registerDecimalValidators teaches gin's validator to see decimal.Decimal as its
// string form, so money fields can carry binding tags like the integer ones do.
func registerDecimalValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation(tagDecimalNonNegative, func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(fl.Field().String())
			return err == nil && !d.IsNegative()
		})
		_ = v.RegisterValidation(tagDecimalPositive, func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(fl.Field().String())
			return err == nil && d.IsPositive()
		})
	})
}
