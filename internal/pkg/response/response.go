// Package response writes the API's JSON envelope. Every endpoint answers
// either {"success":true,"data":...} or {"success":false,"error":{...}} so
// clients branch on one boolean.
package response

import "github.com/gin-gonic/gin"

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{"success": true, "data": data})
}

// Error writes a machine-readable code plus a human message. Codes are
// stable; messages are not.
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, gin.H{"success": false, "error": errorBody{Code: code, Message: message}})
}

// ErrorWithDetails additionally attaches a payload, typically the field:tag
// map produced by struct validation.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details any) {
	c.JSON(statusCode, gin.H{"success": false, "error": errorBody{Code: code, Message: message, Details: details}})
}
