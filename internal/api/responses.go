package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire format shared by every endpoint: "success" carries
// data, "fail" marks a client error (4xx), "error" a server error (5xx).
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type HealthResponse struct {
	Status      string `json:"status" example:"OK"`
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version" example:"1.0.0"`
	Environment string `json:"environment" example:"development"`
}

func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Envelope{Status: "success", Data: data})
}

func SuccessMessage(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Envelope{Status: "success", Message: message, Data: data})
}

// Fail responds with a client-error envelope and stops the handler chain.
func Fail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Envelope{Status: "fail", Message: message})
}

// FailValidation maps a binding error to a 400 with per-field details when
// the error came from validation rules, or a generic message otherwise.
func FailValidation(c *gin.Context, err error) {
	if fields := FieldErrors(err); fields != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
			Status:  "fail",
			Message: "Validation failed",
			Data:    gin.H{"errors": fields},
		})
		return
	}
	Fail(c, http.StatusBadRequest, "Invalid request body")
}

// Error responds with a generic server-error envelope. Details belong in the
// log, not on the wire.
func Error(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{Status: "error", Message: message})
}
