package response

import "github.com/gin-gonic/gin"

const (
	CodeBadRequest         = 40000
	CodeUnauthorized       = 40100
	CodeInvalidCredentials = 40101
	CodeForbidden          = 40300
	CodeNotFound           = 40400
	CodeEmailRegistered    = 40900
	CodeInternalServer     = 50000
)

// ErrorBody is the uniform failure payload: a machine-distinguishable code
// plus a human-readable message.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, ErrorBody{
		Code:    code,
		Message: message,
	})
}
