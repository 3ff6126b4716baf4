package middleware

import (
	"time"

	"github.com/daybookhq/journal-sync-service/global"
	pkgapp "github.com/daybookhq/journal-sync-service/pkg/app"
	pkglogger "github.com/daybookhq/journal-sync-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLog 按请求输出一条访问日志，认证通过的请求带上 uid
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {

		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		startTime := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String(pkglogger.FieldMethod, c.Request.Method),
			zap.String("url", path+"?"+query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration(pkglogger.FieldDuration, time.Since(startTime)),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
		}
		if uid := pkgapp.GetUID(c); uid > 0 {
			fields = append(fields, zap.Int64(pkglogger.FieldUID, uid))
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, zap.String("errors", errs))
		}

		global.Log().Info(path, fields...)
	}
}
