package mockapi

import "github.com/gin-gonic/gin"

// envelope is the backend's uniform response shape.
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respondSuccess(c *gin.Context, status int, data any, message string) {
	if message == "" {
		message = "ok"
	}
	c.JSON(status, envelope{Code: status, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Code: status, Message: message, Data: gin.H{}})
}
