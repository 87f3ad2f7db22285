package apierror

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Error is the single failure type handlers and the viewset machinery raise.
// It is translated to the {message, detail} envelope in Abort and nowhere else.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Detail  any    `json:"detail"`
}

func (e *Error) Error() string {
	return e.Message
}

func Malformed(detail any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: "Incoherent payload", Detail: detail}
}

// Incoherent is the business-rule flavour of a 400: the payload is well
// formed but the current state refuses it (e.g. moderating twice).
func Incoherent(detail any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: "Incoherent input", Detail: detail}
}

func Conflict() *Error {
	return &Error{Status: http.StatusConflict, Message: "This object already exists."}
}

func NotFound() *Error {
	return &Error{Status: http.StatusNotFound, Message: "Not found"}
}

func Forbidden() *Error {
	return &Error{Status: http.StatusForbidden, Message: "Forbidden"}
}

func Unauthorized() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "Unauthorized"}
}

func Internal() *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Something went wrong"}
}

// From maps any error onto an *Error. Repository and binding errors are
// classified here so endpoints never re-wrap them ad hoc.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound()
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return Conflict()
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		detail := make(map[string][]string, len(vErrs))
		for _, fe := range vErrs {
			field := strings.ToLower(fe.Field())
			detail[field] = append(detail[field], "failed on the '"+fe.Tag()+"' constraint")
		}
		return Malformed(detail)
	}

	log.Println("unexpected error:", err)
	return Internal()
}

// Bad wraps a request-decoding failure. Bind errors that are not validator
// errors (broken JSON, wrong types) carry the parser message as detail.
func Bad(err error) *Error {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return From(err)
	}
	return Malformed(err.Error())
}

// Abort writes the uniform error envelope and stops the handler chain.
func Abort(c *gin.Context, err error) {
	apiErr := From(err)
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}
