// Package websocket_router 提供 WebSocket 路由处理器
package websocket_router

import (
	"errors"
	"net"
	"strings"

	"github.com/daybookhq/journal-sync-service/internal/app"
	pkgapp "github.com/daybookhq/journal-sync-service/pkg/app"
	"github.com/daybookhq/journal-sync-service/pkg/code"

	"go.uber.org/zap"
)

// WSHandler WebSocket 基础 Handler 结构体，封装 App Container
// 所有 WebSocket Handler 都应该嵌入此结构体以获得依赖注入能力
type WSHandler struct {
	App *app.App
}

// NewWSHandler 创建 WebSocket 基础 Handler 实例
func NewWSHandler(a *app.App) *WSHandler {
	return &WSHandler{App: a}
}

// logError 记录错误日志
func (h *WSHandler) logError(c *pkgapp.WebsocketClient, method string, err error) {
	// 连接关闭导致的错误降级为调试日志
	if isNetworkClosedError(err) {
		h.App.Logger().Debug(method, zap.Error(err))
		return
	}

	var uid int64
	if c != nil && c.User != nil {
		uid = c.User.UID
	}
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.Int64("uid", uid),
	)
}

// respondError 统一错误响应方法
// 记录错误日志并发送包含 Details 的错误响应给客户端
func (h *WSHandler) respondError(c *pkgapp.WebsocketClient, codeErr *code.Code, err error, method string) {
	h.logError(c, method, err)

	var detailErr *code.Code
	if errors.As(err, &detailErr) {
		c.ToResponse(detailErr)
		return
	}
	c.ToResponse(codeErr.WithDetails(err.Error()))
}

// isNetworkClosedError 判断是否为连接关闭类错误
func isNetworkClosedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, net.ErrClosed) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "use of closed network connection") ||
		strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "broken pipe")
}
