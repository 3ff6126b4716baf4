package middleware

import (
	"github.com/daybookhq/journal-sync-service/global"
	"github.com/daybookhq/journal-sync-service/pkg/app"

	"github.com/gin-gonic/gin"
)

// AppInfo 把服务名称、版本与访问域名写入请求上下文
// 响应头上同时带出版本，便于客户端排查同步问题
func AppInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("app_name", global.Name)
		c.Set("app_version", global.Version)
		c.Set("access_host", app.GetAccessHost(c))
		c.Header("X-App-Version", global.Version)

		c.Next()
	}
}
