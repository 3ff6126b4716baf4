package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/daybookhq/journal-sync-service/global"
	"github.com/daybookhq/journal-sync-service/internal/dao"
	"github.com/daybookhq/journal-sync-service/internal/dto"
	"github.com/daybookhq/journal-sync-service/internal/model"
	"github.com/daybookhq/journal-sync-service/internal/syncstore"
	"github.com/daybookhq/journal-sync-service/pkg/code"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func init() {
	global.Logger = zap.NewNop()
}

func testConfig() *ServiceConfig {
	return &ServiceConfig{
		Timezone:         "UTC",
		TrashRetention:   720 * time.Hour,
		MediaMaxSize:     5 * 1024 * 1024,
		MediaInlineLimit: 1024 * 1024,
		ImageTargetSize:  800 * 1024,
		ImageMaxWidth:    800,
	}
}

func newEntryService(t *testing.T) (EntryService, *syncstore.Notifier) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "journal_",
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrateAll(db))

	notifier := syncstore.NewNotifier()
	repo := dao.NewEntryRepository(dao.New(db))
	return NewEntryService(repo, notifier, testConfig()), notifier
}

func createRequest(title string) *dto.EntryModifyOrCreateRequest {
	now := time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)
	return &dto.EntryModifyOrCreateRequest{
		Title:        title,
		Content:      "some words",
		Date:         now.UnixMilli(),
		LastModified: now.UnixMilli(),
	}
}

func TestEntryServiceCreate(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	created, dropped, err := svc.Create(ctx, 1, createRequest("First entry"))
	require.NoError(t, err)
	assert.False(t, dropped)
	assert.NotZero(t, created.ID)
	assert.False(t, created.Deleted)
	assert.NotNil(t, created.Tags)
	assert.Len(t, created.Tags, 0)
	assert.False(t, created.LastModified.Time().Before(created.Date.Time()))
}

func TestEntryServiceCreateValidation(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	req := createRequest("ok")
	req.Title = "   "
	_, _, err := svc.Create(ctx, 1, req)
	assert.Equal(t, code.ErrorEntryTitleRequired.Code(), err.(*code.Code).Code())

	req = createRequest("ok")
	req.Content = ""
	_, _, err = svc.Create(ctx, 1, req)
	assert.Equal(t, code.ErrorEntryContentRequired.Code(), err.(*code.Code).Code())

	req = createRequest("ok")
	req.VideoLink = "https://vimeo.com/12345"
	_, _, err = svc.Create(ctx, 1, req)
	assert.Equal(t, code.ErrorInvalidVideoLink.Code(), err.(*code.Code).Code())

	req = createRequest("ok")
	req.Tags = []string{"no-hash"}
	_, _, err = svc.Create(ctx, 1, req)
	assert.Equal(t, code.ErrorInvalidTag.Code(), err.(*code.Code).Code())

	req = createRequest("ok")
	req.Tags = []string{"#"}
	_, _, err = svc.Create(ctx, 1, req)
	assert.Equal(t, code.ErrorInvalidTag.Code(), err.(*code.Code).Code())
}

func TestEntryServiceCreateVideoEmbed(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	req := createRequest("with video")
	req.VideoLink = "https://youtu.be/abc123"
	created, _, err := svc.Create(ctx, 1, req)
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/embed/abc123", created.VideoEmbedURL)
}

func TestEntryServiceMediaDropped(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	// media type without payload gets dropped, save still succeeds
	req := createRequest("partial media")
	req.MediaType = "image"
	created, dropped, err := svc.Create(ctx, 1, req)
	require.NoError(t, err)
	assert.True(t, dropped)
	assert.Nil(t, created.Media)
}

func TestEntryServiceInlineMediaOverDocumentCeiling(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	// 超过文档上限（1MB）的内联音频被丢弃，条目本身保存成功
	req := createRequest("big audio")
	req.MediaType = "audio"
	req.MediaData = strings.Repeat("a", 3*1024*1024)
	created, dropped, err := svc.Create(ctx, 1, req)
	require.NoError(t, err)
	assert.True(t, dropped)
	assert.Nil(t, created.Media)

	// 上限以内的内联音频原样入库
	req = createRequest("small audio")
	req.MediaType = "audio"
	req.MediaData = strings.Repeat("a", 512*1024)
	created, dropped, err = svc.Create(ctx, 1, req)
	require.NoError(t, err)
	assert.False(t, dropped)
	require.NotNil(t, created.Media)
	assert.Equal(t, "audio", created.Media.Kind)
}

func TestEntryServiceNotifierPublish(t *testing.T) {
	svc, notifier := newEntryService(t)
	ctx := context.Background()

	ch, cancel := notifier.Listen(1)
	defer cancel()

	created, _, err := svc.Create(ctx, 1, createRequest("published"))
	require.NoError(t, err)

	select {
	case change := <-ch:
		assert.Equal(t, syncstore.ChangeCreate, change.Action)
		assert.Equal(t, created.ID, change.EntryID)
	case <-time.After(time.Second):
		t.Fatal("no change published")
	}
}

func TestEntryServiceTrashRestoreRoundTrip(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, 1, createRequest("to trash"))
	require.NoError(t, err)

	trashed, err := svc.Trash(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.True(t, trashed.Deleted)
	assert.False(t, trashed.DeletedDate.IsZero())

	list, err := svc.Trashed(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 30, list[0].DaysLeft)

	restored, err := svc.Restore(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.False(t, restored.Deleted)
	assert.True(t, restored.DeletedDate.IsZero())

	// back in the list view
	active, err := svc.List(ctx, 1, &dto.EntryListRequest{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, created.ID, active[0].ID)
}

func TestEntryServicePurge(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, 1, createRequest("to purge"))
	require.NoError(t, err)

	require.NoError(t, svc.Purge(ctx, 1, created.ID))

	_, err = svc.Get(ctx, 1, created.ID)
	assert.Equal(t, code.ErrorEntryNotFound.Code(), err.(*code.Code).Code())
}

func TestEntryServiceUpdatePreservesTrashState(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, 1, createRequest("original"))
	require.NoError(t, err)
	_, err = svc.Trash(ctx, 1, created.ID)
	require.NoError(t, err)

	req := createRequest("edited in trash")
	req.ID = created.ID
	updated, _, err := svc.Update(ctx, 1, req)
	require.NoError(t, err)
	assert.Equal(t, "edited in trash", updated.Title)
	assert.True(t, updated.Deleted)
}

func TestEntryServiceUpdateKeepsDate(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, 1, createRequest("original"))
	require.NoError(t, err)

	// 客户端回传的 date 不生效，创建后日期不可变
	req := createRequest("edited")
	req.ID = created.ID
	req.Date = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	updated, _, err := svc.Update(ctx, 1, req)
	require.NoError(t, err)
	assert.Equal(t, created.Date.Time().UnixMilli(), updated.Date.Time().UnixMilli())
}

func TestEntryServiceUpdateStampsLastModified(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, 1, createRequest("original"))
	require.NoError(t, err)

	stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Now().Add(-time.Second)

	req := createRequest("edited")
	req.ID = created.ID
	req.LastModified = stale.UnixMilli()
	updated, _, err := svc.Update(ctx, 1, req)
	require.NoError(t, err)
	assert.True(t, updated.LastModified.Time().After(before),
		"lastModified must be stamped with server time, got %v", updated.LastModified.Time())
}

func TestEntryServiceCleanupAll(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, 1, createRequest("old trash"))
	require.NoError(t, err)
	_, err = svc.Trash(ctx, 1, created.ID)
	require.NoError(t, err)

	// nothing is old enough yet
	n, err := svc.CleanupAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	keep, _, err := svc.Create(ctx, 1, createRequest("fresh"))
	require.NoError(t, err)
	_ = keep
}

func TestEntryServiceWrongUser(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, 1, createRequest("mine"))
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, created.ID)
	assert.Equal(t, code.ErrorEntryNotFound.Code(), err.(*code.Code).Code())

	_, err = svc.Trash(ctx, 2, created.ID)
	assert.Equal(t, code.ErrorEntryNotFound.Code(), err.(*code.Code).Code())
}
