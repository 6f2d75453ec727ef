package resp

import (
	"errors"
	"net/http"

	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	Error(c, apperr.New(apperr.Validation, msg))
}
func Unauthorized(c *gin.Context, msg string) {
	Error(c, apperr.New(apperr.Unauthenticated, msg))
}
func Forbidden(c *gin.Context, msg string) {
	Error(c, apperr.New(apperr.Forbidden, msg))
}

// Error writes err in the error envelope. Errors without a kind are
// reported as INTERNAL and their text is not exposed.
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	body := gin.H{"ok": false, "kind": kind}

	var e *apperr.Error
	if kind != apperr.Internal && errors.As(err, &e) {
		body["error"] = e.Message
		if len(e.Fields) > 0 {
			body["fields"] = e.Fields
		}
		if len(e.Details) > 0 {
			body["details"] = e.Details
		}
	} else {
		_ = c.Error(err) // access log picks it up
		body["error"] = "internal server error"
	}
	c.AbortWithStatusJSON(apperr.HTTPStatus(kind), body)
}
