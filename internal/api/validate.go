package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError mirrors the per-field validation entries the frontend renders.
type FieldError struct {
	Field   string `json:"path"`
	Message string `json:"msg"`
}

// bindJSON binds and validates the request body. On failure it writes the 400
// response itself and returns false.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return false
	}
	return true
}

func fieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "Format permintaan tidak valid."}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   lowerFirst(fe.Field()),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s harus diisi", lowerFirst(fe.Field()))
	case "email":
		return "Masukkan email yang valid"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s minimal harus %s karakter", lowerFirst(fe.Field()), fe.Param())
		}
		return fmt.Sprintf("%s minimal %s", lowerFirst(fe.Field()), fe.Param())
	case "gt":
		return fmt.Sprintf("%s harus lebih dari %s", lowerFirst(fe.Field()), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s", lowerFirst(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("%s tidak valid", lowerFirst(fe.Field()))
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
