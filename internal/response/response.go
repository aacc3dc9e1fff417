package response

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Envelope is the body every endpoint returns. Data and Error never appear
// together; Metadata always carries the request id for log correlation.
type Envelope struct {
	Data       interface{}  `json:"data"`
	Error      *ErrorDetail `json:"error,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
	Metadata   Metadata     `json:"metadata"`
}

// ErrorDetail carries the machine code, the localized message, and optional
// per-field validation messages.
type ErrorDetail struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Pagination describes the window of a paginated list response.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Metadata carries request tracing information.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// Success writes data in the envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{Data: data, Metadata: metadata(c)})
}

// SuccessWithPagination writes data plus its pagination window.
func SuccessWithPagination(c *gin.Context, statusCode int, data interface{}, pagination *Pagination) {
	c.JSON(statusCode, Envelope{Data: data, Pagination: pagination, Metadata: metadata(c)})
}

// Fail writes an error envelope for the given code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, errEnvelope(c, code, nil))
}

// FailWithFields writes an error envelope with per-field validation messages.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, errEnvelope(c, code, fields))
}

// AbortFail writes an error envelope and stops the middleware chain. For use
// inside middlewares; handlers use Fail.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, errEnvelope(c, code, nil))
}

func errEnvelope(c *gin.Context, code ErrCode, fields map[string]string) Envelope {
	return Envelope{
		Error:    &ErrorDetail{Code: code, Message: GetMessage(code), Fields: fields},
		Metadata: metadata(c),
	}
}

func metadata(c *gin.Context) Metadata {
	id := c.GetString(ContextKeyRequestID)
	if id == "" {
		// Request-id middleware not in the chain for this route.
		id = uuid.New().String()
	}
	return Metadata{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
