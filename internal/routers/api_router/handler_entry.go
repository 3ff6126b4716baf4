package api_router

import (
	"context"
	"time"

	"github.com/daybookhq/journal-sync-service/internal/app"
	"github.com/daybookhq/journal-sync-service/internal/dto"
	pkgapp "github.com/daybookhq/journal-sync-service/pkg/app"
	"github.com/daybookhq/journal-sync-service/pkg/code"
	apperrors "github.com/daybookhq/journal-sync-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EntryHandler 日记条目 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type EntryHandler struct {
	*Handler
}

// NewEntryHandler 创建 EntryHandler 实例
func NewEntryHandler(a *app.App, wss *pkgapp.WebsocketServer) *EntryHandler {
	return &EntryHandler{
		Handler: NewHandlerWithWSS(a, wss),
	}
}

// userLocation resolves the calendar timezone for a user, falling back
// to the server default when the user has none set.
func (h *EntryHandler) userLocation(ctx context.Context, uid int64) *time.Location {
	if u, err := h.App.UserService.GetDomain(ctx, uid); err == nil && u != nil {
		return u.Location()
	}
	if loc, err := time.LoadLocation(h.App.Config().App.Timezone); err == nil {
		return loc
	}
	return time.UTC
}

// Get 获取单条日记详情
// @Summary 获取日记详情
// @Tags 日记
// @Security UserAuthToken
// @Produce json
// @Param params query dto.EntryIDRequest true "获取参数"
// @Success 200 {object} pkgapp.Res{data=dto.EntryDTO} "成功"
// @Router /api/entry [get]
func (h *EntryHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryIDRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Get.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	entry, err := h.App.EntryService.Get(c.Request.Context(), uid, params.ID)
	if err != nil {
		h.App.Logger().Error("EntryHandler.Get", zap.Error(err))
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(entry))
}

// List 获取日记列表（按日期倒序，支持关键字搜索）
// @Summary 获取日记列表
// @Tags 日记
// @Security UserAuthToken
// @Produce json
// @Param params query dto.EntryListRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=[]dto.EntryDTO} "成功"
// @Router /api/entries [get]
func (h *EntryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.List.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	list, err := h.App.EntryService.List(c.Request.Context(), uid, params)
	if err != nil {
		h.App.Logger().Error("EntryHandler.List", zap.Error(err))
		apperrors.ErrorResponse(c, err)
		return
	}

	// 投影结果在内存中分页
	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSizeWithConfig(c, pkgapp.PaginationConfig{
		DefaultPageSize: h.App.Config().App.DefaultPageSize,
		MaxPageSize:     h.App.Config().App.MaxPageSize,
	})
	total := len(list)
	offset := pkgapp.GetPageOffset(page, pageSize)
	if offset > total {
		offset = total
	}
	end := offset + pageSize
	if end > total {
		end = total
	}

	response.ToResponseList(code.Success, list[offset:end], total)
}

// Calendar 日历视图：某月每天的条目统计
// @Summary 获取日历视图
// @Tags 日记
// @Security UserAuthToken
// @Produce json
// @Param params query dto.CalendarRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=[]dto.CalendarDayDTO} "成功"
// @Router /api/entries/calendar [get]
func (h *EntryHandler) Calendar(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CalendarRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Calendar.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	days, err := h.App.EntryService.Calendar(ctx, uid, params, h.userLocation(ctx, uid))
	if err != nil {
		h.App.Logger().Error("EntryHandler.Calendar", zap.Error(err))
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(days))
}

// CalendarDay 日历视图：某天的全部条目
// @Summary 获取某天的日记
// @Tags 日记
// @Security UserAuthToken
// @Produce json
// @Param params query dto.CalendarDayRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=[]dto.EntryDTO} "成功"
// @Router /api/entries/calendar/day [get]
func (h *EntryHandler) CalendarDay(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CalendarDayRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.CalendarDay.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	entries, err := h.App.EntryService.CalendarDay(ctx, uid, params, h.userLocation(ctx, uid))
	if err != nil {
		h.App.Logger().Error("EntryHandler.CalendarDay", zap.Error(err))
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(entries))
}

// Trashed 回收站视图，附带剩余保留天数
// @Summary 获取回收站列表
// @Tags 日记
// @Security UserAuthToken
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.EntryDTO} "成功"
// @Router /api/trash [get]
func (h *EntryHandler) Trashed(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	entries, err := h.App.EntryService.Trashed(c.Request.Context(), uid)
	if err != nil {
		h.App.Logger().Error("EntryHandler.Trashed", zap.Error(err))
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(entries))
}

// Create 创建日记条目
// @Summary 创建日记
// @Tags 日记
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param params body dto.EntryModifyOrCreateRequest true "创建参数"
// @Success 200 {object} pkgapp.Res{data=dto.EntryDTO} "成功"
// @Router /api/entry [post]
func (h *EntryHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryModifyOrCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	entry, dropped, err := h.App.EntryService.Create(c.Request.Context(), uid, params)
	if err != nil {
		h.App.Logger().Error("EntryHandler.Create", zap.Error(err))
		apperrors.ErrorResponse(c, err)
		return
	}

	MetricEntryMutations.WithLabelValues("create").Inc()

	// 媒体超限被丢弃时返回部分成功
	if dropped {
		response.ToResponse(code.SuccessMediaDropped.WithData(entry))
		return
	}

	response.ToResponse(code.Success.WithData(entry))
}

// Update 修改日记条目
// @Summary 修改日记
// @Tags 日记
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param params body dto.EntryModifyOrCreateRequest true "修改参数"
// @Success 200 {object} pkgapp.Res{data=dto.EntryDTO} "成功"
// @Router /api/entry [put]
func (h *EntryHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryModifyOrCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	entry, dropped, err := h.App.EntryService.Update(c.Request.Context(), uid, params)
	if err != nil {
		h.App.Logger().Error("EntryHandler.Update", zap.Error(err))
		apperrors.ErrorResponse(c, err)
		return
	}

	MetricEntryMutations.WithLabelValues("update").Inc()

	if dropped {
		response.ToResponse(code.SuccessMediaDropped.WithData(entry))
		return
	}

	response.ToResponse(code.Success.WithData(entry))
}

// Trash 将日记移入回收站
// @Summary 删除日记（移入回收站）
// @Tags 日记
// @Security UserAuthToken
// @Produce json
// @Param params query dto.EntryIDRequest true "删除参数"
// @Success 200 {object} pkgapp.Res{data=dto.EntryDTO} "成功"
// @Router /api/entry [delete]
func (h *EntryHandler) Trash(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryIDRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Trash.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	entry, err := h.App.EntryService.Trash(c.Request.Context(), uid, params.ID)
	if err != nil {
		h.App.Logger().Error("EntryHandler.Trash", zap.Error(err))
		apperrors.ErrorResponse(c, err)
		return
	}

	MetricEntryMutations.WithLabelValues("trash").Inc()

	response.ToResponse(code.Success.WithData(entry))
}

// Restore 将日记移出回收站
// @Summary 恢复日记
// @Tags 日记
// @Security UserAuthToken
// @Produce json
// @Param params body dto.EntryIDRequest true "恢复参数"
// @Success 200 {object} pkgapp.Res{data=dto.EntryDTO} "成功"
// @Router /api/entry/restore [put]
func (h *EntryHandler) Restore(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryIDRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Restore.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	entry, err := h.App.EntryService.Restore(c.Request.Context(), uid, params.ID)
	if err != nil {
		h.App.Logger().Error("EntryHandler.Restore", zap.Error(err))
		apperrors.ErrorResponse(c, err)
		return
	}

	MetricEntryMutations.WithLabelValues("restore").Inc()

	response.ToResponse(code.Success.WithData(entry))
}

// Purge 彻底删除日记（物理删除）
// @Summary 彻底删除日记
// @Tags 日记
// @Security UserAuthToken
// @Produce json
// @Param params query dto.EntryIDRequest true "删除参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/entry/purge [delete]
func (h *EntryHandler) Purge(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryIDRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Purge.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	if err := h.App.EntryService.Purge(c.Request.Context(), uid, params.ID); err != nil {
		h.App.Logger().Error("EntryHandler.Purge", zap.Error(err))
		apperrors.ErrorResponse(c, err)
		return
	}

	MetricEntryMutations.WithLabelValues("purge").Inc()

	response.ToResponse(code.Success)
}
