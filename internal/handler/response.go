package handler

import (
	"github.com/gin-gonic/gin"
)

// Response 统一响应信封，所有接口返回该结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// respondSuccess 写入成功信封
func respondSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError 写入失败信封，Data 恒为空
func respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}
