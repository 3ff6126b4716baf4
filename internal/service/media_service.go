package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
	"time"

	"github.com/daybookhq/journal-sync-service/global"
	"github.com/daybookhq/journal-sync-service/internal/dto"
	"github.com/daybookhq/journal-sync-service/pkg/code"
	"github.com/daybookhq/journal-sync-service/pkg/fileurl"
	"github.com/daybookhq/journal-sync-service/pkg/logger"
	pkgstorage "github.com/daybookhq/journal-sync-service/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// jpeg quality ladder walked until the image fits the target size
var jpegQualitySteps = []int{85, 70, 55, 40, 25}

// MediaService 定义媒体接入业务服务接口
type MediaService interface {
	// Ingest validates, compresses and places an uploaded media file.
	// Images are scaled and recompressed to fit the inline budget; audio
	// within the inline ceiling stays inline, larger audio goes to the
	// configured storage backend.
	Ingest(ctx context.Context, uid int64, fileName string, content []byte) (*dto.UploadResultDTO, error)
}

// mediaService 实现 MediaService 接口
type mediaService struct {
	storage pkgstorage.Storager // nil when storage type is inline
	config  *ServiceConfig
}

// NewMediaService 创建 MediaService 实例
func NewMediaService(storage pkgstorage.Storager, config *ServiceConfig) MediaService {
	return &mediaService{
		storage: storage,
		config:  config,
	}
}

func (s *mediaService) Ingest(ctx context.Context, uid int64, fileName string, content []byte) (*dto.UploadResultDTO, error) {
	if int64(len(content)) > s.config.MediaMaxSize {
		return nil, code.ErrorPayloadTooLarge
	}

	contentType := http.DetectContentType(content)
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return s.ingestImage(ctx, uid, fileName, content, contentType)
	case strings.HasPrefix(contentType, "audio/"), contentType == "application/octet-stream" && isAudioExt(fileName):
		return s.ingestAudio(ctx, uid, fileName, content, contentType)
	}
	return nil, code.ErrorUnsupportedMediaType.WithDetails(contentType)
}

func isAudioExt(fileName string) bool {
	switch strings.ToLower(fileurl.GetFileExt(fileName)) {
	case ".mp3", ".m4a", ".ogg", ".wav", ".webm":
		return true
	}
	return false
}

// storageKey builds the object key: {prefix}/{uuid}_{filename}
func storageKey(prefix, fileName string) string {
	return fmt.Sprintf("%s/%s_%s", prefix, uuid.New().String(), fileName)
}

func (s *mediaService) ingestImage(ctx context.Context, uid int64, fileName string, content []byte, contentType string) (*dto.UploadResultDTO, error) {
	compressed, err := s.compressImage(content)
	if err != nil {
		return nil, err
	}

	global.Logger.Info("image ingested",
		zap.Int64(logger.FieldUID, uid),
		zap.Int(logger.FieldSize, len(compressed)),
		zap.String(logger.FieldMediaKind, "image"))

	if s.storage != nil {
		key := storageKey("images", fileName)
		fileKey, err := s.storage.SendContent(key, compressed, time.Now())
		if err != nil {
			return nil, code.ErrorUploadFileFailed.WithDetails(err.Error())
		}
		return &dto.UploadResultDTO{
			Kind:     "image",
			URL:      fileKey,
			Size:     int64(len(compressed)),
			FileName: fileName,
		}, nil
	}

	return &dto.UploadResultDTO{
		Kind:     "image",
		Inline:   true,
		Data:     base64.StdEncoding.EncodeToString(compressed),
		Size:     int64(len(compressed)),
		FileName: fileName,
	}, nil
}

func (s *mediaService) ingestAudio(ctx context.Context, uid int64, fileName string, content []byte, contentType string) (*dto.UploadResultDTO, error) {
	if int64(len(content)) <= s.config.MediaInlineLimit {
		return &dto.UploadResultDTO{
			Kind:     "audio",
			Inline:   true,
			Data:     base64.StdEncoding.EncodeToString(content),
			Size:     int64(len(content)),
			FileName: fileName,
		}, nil
	}

	// over the inline ceiling: external storage or nothing
	if s.storage == nil {
		return nil, code.ErrorPayloadTooLarge.WithDetails("audio exceeds inline limit and no storage backend is configured")
	}

	key := storageKey("audio", fileName)
	fileKey, err := s.storage.SendFile(key, bytes.NewReader(content), contentType, time.Now())
	if err != nil {
		return nil, code.ErrorUploadFileFailed.WithDetails(err.Error())
	}

	global.Logger.Info("audio stored externally",
		zap.Int64(logger.FieldUID, uid),
		zap.String(logger.FieldFileKey, fileKey),
		zap.Int(logger.FieldSize, len(content)))

	return &dto.UploadResultDTO{
		Kind:     "audio",
		URL:      fileKey,
		Size:     int64(len(content)),
		FileName: fileName,
	}, nil
}

// compressImage scales the image down to the configured max width and
// walks the jpeg quality ladder until the result fits the target size.
func (s *mediaService) compressImage(content []byte) ([]byte, error) {
	img, _, err := decodeImage(content)
	if err != nil {
		return nil, code.ErrorUnsupportedMediaType.WithDetails(err.Error())
	}

	img = scaleDown(img, s.config.ImageMaxWidth)

	for _, quality := range jpegQualitySteps {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, code.ErrorCompressionFailed.WithDetails(err.Error())
		}
		if int64(buf.Len()) <= s.config.ImageTargetSize {
			return buf.Bytes(), nil
		}
	}
	return nil, code.ErrorCompressionFailed
}

func decodeImage(content []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(content))
}

// scaleDown resizes so neither side exceeds maxSide, preserving aspect
// ratio. Images already within bounds pass through untouched.
func scaleDown(img image.Image, maxSide int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	var nw, nh int
	if w >= h {
		nw = maxSide
		nh = h * maxSide / w
	} else {
		nh = maxSide
		nw = w * maxSide / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
