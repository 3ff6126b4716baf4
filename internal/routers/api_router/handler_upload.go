package api_router

import (
	"io"

	"github.com/daybookhq/journal-sync-service/internal/app"
	pkgapp "github.com/daybookhq/journal-sync-service/pkg/app"
	"github.com/daybookhq/journal-sync-service/pkg/code"
	apperrors "github.com/daybookhq/journal-sync-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadHandler 媒体上传处理器
type UploadHandler struct {
	*Handler
}

// NewUploadHandler 创建 UploadHandler 实例
func NewUploadHandler(a *app.App) *UploadHandler {
	return &UploadHandler{Handler: NewHandler(a)}
}

// Upload 上传媒体文件（图片或音频）
// 图片会被压缩到内联预算内，超出内联上限的音频会转存到外部存储
// @Summary 上传媒体文件
// @Tags 媒体
// @Security UserAuthToken
// @Accept multipart/form-data
// @Produce json
// @Param mediafile formData file true "媒体文件"
// @Success 200 {object} pkgapp.Res{data=dto.UploadResultDTO} "成功"
// @Router /api/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	file, fileHeader, err := c.Request.FormFile("mediafile")
	if err != nil {
		h.App.Logger().Error("UploadHandler.Upload.FormFile", zap.Error(err))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}
	defer file.Close()

	// 读取上限之外多留一个字节，让超限判断落在服务层统一处理
	maxSize := h.App.Config().GetMaxUploadSize()
	content, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		h.App.Logger().Error("UploadHandler.Upload.ReadAll", zap.Error(err))
		response.ToResponse(code.ErrorUploadFileFailed.WithDetails(err.Error()))
		return
	}

	result, err := h.App.MediaService.Ingest(c.Request.Context(), uid, fileHeader.Filename, content)
	if err != nil {
		h.App.Logger().Error("UploadHandler.Upload.Ingest", zap.Error(err))
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
