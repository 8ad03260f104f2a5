package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope: a success flag, a
// user-facing (localized) message and an optional result payload. A
// success with a payload always carries the result key, even for
// zero values like an emptied cart's total of 0.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

// Status is the envelope without a result, used for message-only
// answers and every failure.
type Status struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Messages shared across handlers.
const (
	MsgUnknown          = "未知錯誤"
	MsgDuplicateAccount = "帳號已註冊"
	MsgBadID            = "ID 格式錯誤"
	MsgProductNotFound  = "查無商品"
	MsgUnauthorized     = "未授權"
	MsgForbidden        = "權限不足"
	MsgTooManyRequests  = "請求過於頻繁"
)

// OK writes a 200 envelope with a result.
func OK[T any](c *gin.Context, result T) {
	c.JSON(http.StatusOK, Envelope[T]{Success: true, Result: result})
}

// OKMessage writes a 200 envelope without a result.
func OKMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Status{Success: true, Message: message})
}

// Fail writes an error envelope with the given status.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Status{Success: false, Message: message})
}

// AbortFail writes an error envelope and aborts the handler chain.
func AbortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Status{Success: false, Message: message})
}
