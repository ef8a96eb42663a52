package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform JSON response shape. Code is 0 on success and a
// board error code otherwise; Data carries the payload only on success.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes the 200 envelope around data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Message: "success", Data: data})
}

// Error writes an error envelope with the given HTTP status and board code.
func Error(c *gin.Context, status, code int, message string) {
	c.JSON(status, Envelope{Code: code, Message: message})
}
