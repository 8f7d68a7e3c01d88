package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError describe una regla `validate` incumplida.
type FieldError struct {
	Field string // ruta JSON del campo, ej. "items[0].quantity"
	Tag   string
	Param string
}

// Message devuelve una descripción legible del fallo.
func (e FieldError) Message() string {
	switch e.Tag {
	case "required":
		return "es obligatorio"
	case "gt":
		return "debe ser mayor que " + e.Param
	case "gte":
		return "debe ser mayor o igual que " + e.Param
	case "min":
		return "debe tener un mínimo de " + e.Param
	case "max":
		return "debe tener un máximo de " + e.Param
	case "oneof":
		return "debe ser uno de: " + e.Param
	case "email":
		return "debe ser un email válido"
	case "url":
		return "debe ser una URL válida"
	case "money":
		return "debe ser un monto no negativo con máximo 2 decimales"
	default:
		return fmt.Sprintf("no cumple la regla %s", e.Tag)
	}
}

var validate = validator.New()

// maxMoney primer valor que no cabe en NUMERIC(14,2).
var maxMoney = decimal.New(1, 12)

func init() {
	// Nombres de campo según el tag json para que coincidan con el body.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// money: monto >= 0 que cabe en NUMERIC(14,2) sin redondeo.
	validate.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return !d.IsNegative() && d.LessThan(maxMoney) && d.Equal(d.Truncate(2))
	})
}

// Struct valida data y devuelve los fallos en orden de declaración; nil si es válido.
func Struct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Tag: "invalid", Param: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field: trimRoot(fe.Namespace()),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// trimRoot quita el nombre del struct raíz del namespace ("Req.items[0].quantity" -> "items[0].quantity").
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
