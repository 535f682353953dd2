package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Success bool   `json:"success"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Success: false,
		Code:    code,
		Message: message,
	})
}

// Respond writes err using the status Classify assigns to it.
func Respond(c *gin.Context, err error) {
	status, code, message := Classify(err)
	Write(c, status, code, message)
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func RequestTooLarge(c *gin.Context, code, message string) {
	Write(c, http.StatusRequestEntityTooLarge, code, message)
}

// Classify maps an error to the status, code and message returned to
// clients. Unknown errors become a generic 500.
func Classify(err error) (status int, code, message string) {
	if be, ok := AsBusiness(err); ok {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		return http.StatusBadRequest, be.Code, msg
	}
	if se, ok := AsServer(err); ok {
		return http.StatusInternalServerError, se.Code, se.Message
	}
	return http.StatusInternalServerError, "internal_error", "Erro interno."
}
