package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sooldama/sooldama/internal/common"
)

// errorKind maps a domain error to its HTTP status and wire code.
type errorKind struct {
	err    error
	status int
	code   string
}

var errorKinds = []errorKind{
	{common.ErrAuthenticationRequired, http.StatusBadRequest, "AUTHENTICATION_REQUIRED"},
	{common.ErrAlreadyAuthenticated, http.StatusBadRequest, "ALREADY_AUTHENTICATED"},
	{common.ErrDuplicateEmailExists, http.StatusBadRequest, "DUPLICATE_EMAIL_EXISTS"},
	{common.ErrPasswordNotMatch, http.StatusBadRequest, "PASSWORD_NOT_MATCH"},
	{common.ErrorValidation, http.StatusBadRequest, "VALIDATION_FAILED"},
	{common.ErrNoSuchUser, http.StatusNotFound, "NO_SUCH_USER"},
	{common.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
}

func classify(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

func writeError(c *gin.Context, status int, code string, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": code, "message": msg})
}

// abortWithError writes err as the response. Unknown errors never leak
// their text.
func abortWithError(c *gin.Context, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = common.ErrorInternal.Error()
	}
	writeError(c, status, code, msg)
}

func abortWithValidation(c *gin.Context, err error) {
	writeError(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
}
