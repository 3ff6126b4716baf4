package middleware

import (
	"github.com/daybookhq/journal-sync-service/pkg/app"
	"github.com/daybookhq/journal-sync-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound 未命中路由统一返回 API 不存在错误码
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		app.NewResponse(c).ToResponse(code.ErrorNotFoundAPI)
		c.Abort()
	}
}
