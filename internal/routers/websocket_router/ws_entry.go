package websocket_router

import (
	"context"
	"sync"

	"github.com/daybookhq/journal-sync-service/internal/app"
	"github.com/daybookhq/journal-sync-service/internal/domain"
	"github.com/daybookhq/journal-sync-service/internal/dto"
	"github.com/daybookhq/journal-sync-service/internal/routers/api_router"
	pkgapp "github.com/daybookhq/journal-sync-service/pkg/app"
	"github.com/daybookhq/journal-sync-service/pkg/code"
	"github.com/daybookhq/journal-sync-service/pkg/util"

	"go.uber.org/zap"
)

// EntrySyncAction 推送全量条目快照的动作名
const EntrySyncAction = "EntrySync"

// syncSession 一个用户的同步会话：持有 Store 引用和订阅，按连接数计数
type syncSession struct {
	conns   int
	release func()
	unsub   func()
}

// EntryWSHandler WebSocket 日记条目处理器
// 使用 App Container 注入依赖
type EntryWSHandler struct {
	*WSHandler
	wss *pkgapp.WebsocketServer

	mu       sync.Mutex
	sessions map[int64]*syncSession
}

// NewEntryWSHandler 创建 EntryWSHandler 实例
func NewEntryWSHandler(a *app.App, wss *pkgapp.WebsocketServer) *EntryWSHandler {
	return &EntryWSHandler{
		WSHandler: NewWSHandler(a),
		wss:       wss,
		sessions:  make(map[int64]*syncSession),
	}
}

// UserInfo 授权阶段的用户有效性校验
func (h *EntryWSHandler) UserInfo(c *pkgapp.WebsocketClient, uid int64) (*pkgapp.WSUserData, error) {
	user, err := h.App.UserService.GetDomain(context.Background(), uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, code.ErrorUserNotExist
	}
	return &pkgapp.WSUserData{
		UID:      user.UID,
		Email:    user.Email,
		Nickname: user.Nickname,
	}, nil
}

// OnJoin 用户连接授权成功后挂接同步会话
// 同一用户的首个连接会从 Hub 取得 Store 并订阅变更，
// 后续连接复用会话，订阅回调会把全量快照推给该用户的所有连接
func (h *EntryWSHandler) OnJoin(c *pkgapp.WebsocketClient) {
	uid := c.User.UID

	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.sessions[uid]; ok {
		s.conns++
		api_router.MetricWSConnections.Inc()
		// 新连接立即补一份当前快照
		h.pushSnapshot(uid)
		return
	}

	store, release, err := h.App.Hub.Acquire(context.Background(), uid)
	if err != nil {
		h.logError(c, "websocket_router.entry.OnJoin.Acquire", err)
		c.ToResponse(code.ErrorServerInternal.WithDetails(err.Error()))
		return
	}

	unsub := store.Subscribe(func(entries []*domain.Entry) {
		n := h.wss.PushToUser(uid, EntrySyncAction, h.toDTOList(entries))
		if n > 0 {
			api_router.MetricSyncPushes.Inc()
		}
	})

	h.sessions[uid] = &syncSession{conns: 1, release: release, unsub: unsub}
	api_router.MetricWSConnections.Inc()

	h.App.Logger().Info("sync session opened",
		zap.Int64("uid", uid))
}

// OnLeave 用户连接断开时释放同步会话
func (h *EntryWSHandler) OnLeave(c *pkgapp.WebsocketClient) {
	if c.User == nil {
		return
	}
	uid := c.User.UID

	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[uid]
	if !ok {
		return
	}
	api_router.MetricWSConnections.Dec()
	s.conns--
	if s.conns > 0 {
		return
	}

	s.unsub()
	s.release()
	delete(h.sessions, uid)

	h.App.Logger().Info("sync session closed",
		zap.Int64("uid", uid))
}

// EntrySync 客户端主动请求全量快照
func (h *EntryWSHandler) EntrySync(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	entries, err := h.App.EntryService.Snapshot(c.Ctx.Request.Context(), c.User.UID)
	if err != nil {
		h.respondError(c, code.ErrorServerInternal, err, "websocket_router.entry.EntrySync")
		return
	}

	c.ToResponse(code.Success.WithData(entries), EntrySyncAction)
}

// EntryModify 创建或修改日记条目
// ID 为零时创建，否则按 ID 修改
func (h *EntryWSHandler) EntryModify(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.EntryModifyOrCreateRequest{}

	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Ctx.Request.Context()

	var entry *dto.EntryDTO
	var dropped bool
	var err error

	if params.ID == 0 {
		entry, dropped, err = h.App.EntryService.Create(ctx, c.User.UID, params)
	} else {
		entry, dropped, err = h.App.EntryService.Update(ctx, c.User.UID, params)
	}
	if err != nil {
		h.respondError(c, code.ErrorEntryCreateFailed, err, "websocket_router.entry.EntryModify")
		return
	}

	if dropped {
		c.ToResponse(code.SuccessMediaDropped.WithData(entry))
		return
	}
	c.ToResponse(code.Success.WithData(entry))
}

// EntryDelete 将条目移入回收站
func (h *EntryWSHandler) EntryDelete(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.EntryIDRequest{}

	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	entry, err := h.App.EntryService.Trash(c.Ctx.Request.Context(), c.User.UID, params.ID)
	if err != nil {
		h.respondError(c, code.ErrorEntryDeleteFailed, err, "websocket_router.entry.EntryDelete")
		return
	}

	c.ToResponse(code.Success.WithData(entry))
}

// EntryRestore 将条目移出回收站
func (h *EntryWSHandler) EntryRestore(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.EntryIDRequest{}

	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	entry, err := h.App.EntryService.Restore(c.Ctx.Request.Context(), c.User.UID, params.ID)
	if err != nil {
		h.respondError(c, code.ErrorEntryUpdateFailed, err, "websocket_router.entry.EntryRestore")
		return
	}

	c.ToResponse(code.Success.WithData(entry))
}

// EntryPurge 彻底删除条目
func (h *EntryWSHandler) EntryPurge(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.EntryIDRequest{}

	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	if err := h.App.EntryService.Purge(c.Ctx.Request.Context(), c.User.UID, params.ID); err != nil {
		h.respondError(c, code.ErrorEntryDeleteFailed, err, "websocket_router.entry.EntryPurge")
		return
	}

	c.ToResponse(code.Success)
}

// pushSnapshot 把当前 Store 快照推给用户（新连接补发用）
// 调用方必须持有 h.mu
func (h *EntryWSHandler) pushSnapshot(uid int64) {
	store, release, err := h.App.Hub.Acquire(context.Background(), uid)
	if err != nil {
		h.App.Logger().Error("websocket_router.entry.pushSnapshot", zap.Error(err))
		return
	}
	defer release()

	h.wss.PushToUser(uid, EntrySyncAction, h.toDTOList(store.Snapshot()))
}

// toDTOList 将领域条目转换为客户端 DTO
func (h *EntryWSHandler) toDTOList(entries []*domain.Entry) []*dto.EntryDTO {
	out := make([]*dto.EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.NewEntryDTO(e, util.VideoEmbedURL(e.VideoLink)))
	}
	return out
}
