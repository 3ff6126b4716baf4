// Package routers 组装 HTTP 与 WebSocket 路由
package routers

import (
	"net/http"
	"time"

	"github.com/daybookhq/journal-sync-service/internal/app"
	"github.com/daybookhq/journal-sync-service/internal/middleware"
	"github.com/daybookhq/journal-sync-service/internal/routers/api_router"
	"github.com/daybookhq/journal-sync-service/internal/routers/websocket_router"
	pkgapp "github.com/daybookhq/journal-sync-service/pkg/app"
	"github.com/daybookhq/journal-sync-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/lxzan/gws"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 创建主路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	var wss = pkgapp.NewWebsocketServer(pkgapp.WebsocketServerConfig{
		GWSOption: gws.ServerOption{
			CheckUtf8Enabled:    true,
			ParallelEnabled:     true,                                 // 开启并行消息处理
			Recovery:            gws.Recovery,                         // 开启异常恢复
			PermessageDeflate:   gws.PermessageDeflate{Enabled: true}, // 开启压缩
			ParallelGolimit:     8,
			ReadMaxPayloadSize:  1024 * 1024 * 64, // 设置最大读取缓冲区大小 64MB
			WriteMaxPayloadSize: 1024 * 1024 * 64, // 设置最大写入缓冲区大小 64MB
		},
		PingInterval: 30 * time.Second,
		PingWait:     10 * time.Second,
		TokenManager: appContainer.TokenManager,
	})

	// 创建 WebSocket Handlers（注入 App Container）
	entryWSHandler := websocket_router.NewEntryWSHandler(appContainer, wss)

	// 全量快照
	wss.Use(websocket_router.EntrySyncAction, entryWSHandler.EntrySync)
	// 创建或修改
	wss.Use("EntryModify", entryWSHandler.EntryModify)
	// 移入回收站
	wss.Use("EntryDelete", entryWSHandler.EntryDelete)
	// 恢复
	wss.Use("EntryRestore", entryWSHandler.EntryRestore)
	// 彻底删除
	wss.Use("EntryPurge", entryWSHandler.EntryPurge)

	wss.UserDataSelectUse(entryWSHandler.UserInfo)
	wss.OnAuthorized(entryWSHandler.OnJoin)
	wss.OnLeave(entryWSHandler.OnLeave)

	if cfg.Server.RunMode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo())
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog())
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		entryHandler := api_router.NewEntryHandler(appContainer, wss)
		uploadHandler := api_router.NewUploadHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.GET("/health", healthHandler.Check)

		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)
		api.GET("/user/sync", wss.Run())

		authed := api.Group("", middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))

		authed.PUT("/user/change_password", userHandler.ChangePassword)
		authed.GET("/user/info", userHandler.Info)

		authed.GET("/entries", entryHandler.List)
		authed.GET("/entries/calendar", entryHandler.Calendar)
		authed.GET("/entries/calendar/day", entryHandler.CalendarDay)
		authed.GET("/trash", entryHandler.Trashed)

		authed.GET("/entry", entryHandler.Get)
		authed.POST("/entry", entryHandler.Create)
		authed.PUT("/entry", entryHandler.Update)
		authed.DELETE("/entry", entryHandler.Trash)
		authed.PUT("/entry/restore", entryHandler.Restore)
		authed.DELETE("/entry/purge", entryHandler.Purge)

		authed.POST("/upload", uploadHandler.Upload)
	}

	// 本地存储的媒体文件直出
	if cfg.Storage.Type == "localfs" && cfg.Storage.HttpfsIsEnable && cfg.Storage.SavePath != "" {
		r.StaticFS("/"+cfg.Storage.SavePath, http.Dir(cfg.Storage.SavePath))
	}
	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
