package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/aigallery/core/internal/models"
	"github.com/aigallery/core/internal/pkg/errs"
	"github.com/aigallery/core/internal/pkg/pagination"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.FileModel{}))
	return db
}

func seedAsset(t *testing.T, db *gorm.DB, mutate func(*models.FileModel)) *models.FileModel {
	t.Helper()
	f := &models.FileModel{
		FileName:      "asset.png",
		FileType:      models.FileTypeImage,
		AIModel:       "flux-pro",
		Prompt:        "a lighthouse at dusk",
		UserID:        "admin-1",
		PublishStatus: models.PublishStatusPublished,
	}
	if mutate != nil {
		mutate(f)
	}
	require.NoError(t, db.Create(f).Error)
	return f
}

func TestListPublished_ExcludesUnpublished(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	published := seedAsset(t, db, nil)
	seedAsset(t, db, func(f *models.FileModel) {
		f.PublishStatus = models.PublishStatusUnpublished
	})

	files, pag, err := svc.ListPublished(pagination.Query{Page: 1, Size: 20}, Filter{})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, published.ID, files[0].ID)
	assert.EqualValues(t, 1, pag.Total)
	assert.False(t, pag.HasNextPage)
}

func TestListPublished_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	old := seedAsset(t, db, func(f *models.FileModel) {
		f.CreatedAt = time.Now().Add(-time.Hour)
	})
	fresh := seedAsset(t, db, nil)

	files, _, err := svc.ListPublished(pagination.Query{Page: 1, Size: 20}, Filter{})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, fresh.ID, files[0].ID)
	assert.Equal(t, old.ID, files[1].ID)
}

func TestListPublished_Pagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	for i := 0; i < 5; i++ {
		seedAsset(t, db, func(f *models.FileModel) {
			f.CreatedAt = time.Now().Add(-time.Duration(i) * time.Minute)
		})
	}

	files, pag, err := svc.ListPublished(pagination.Query{Page: 1, Size: 2}, Filter{})
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.EqualValues(t, 5, pag.Total)
	assert.Equal(t, 3, pag.TotalPage)
	assert.True(t, pag.HasNextPage)

	files, pag, err = svc.ListPublished(pagination.Query{Page: 3, Size: 2}, Filter{})
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.False(t, pag.HasNextPage)
}

func TestListPublished_Filters(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	seedAsset(t, db, nil)
	video := seedAsset(t, db, func(f *models.FileModel) {
		f.FileType = models.FileTypeVideo
		f.AIModel = "veo"
		f.Prompt = "ocean waves crashing"
	})

	files, _, err := svc.ListPublished(pagination.Query{Page: 1, Size: 20}, Filter{FileType: models.FileTypeVideo})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, video.ID, files[0].ID)

	files, _, err = svc.ListPublished(pagination.Query{Page: 1, Size: 20}, Filter{AIModel: "veo"})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, _, err = svc.ListPublished(pagination.Query{Page: 1, Size: 20}, Filter{Search: "ocean"})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	// "all" is a no-op filter.
	files, _, err = svc.ListPublished(pagination.Query{Page: 1, Size: 20}, Filter{FileType: "all"})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestGetPublished(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	asset := seedAsset(t, db, nil)
	hidden := seedAsset(t, db, func(f *models.FileModel) {
		f.PublishStatus = models.PublishStatusUnpublished
	})

	got, err := svc.GetPublished(asset.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.ID, got.ID)

	_, err = svc.GetPublished(hidden.ID)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = svc.GetPublished("no-such-id")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestReferenceImages(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	ref1 := seedAsset(t, db, nil)
	ref2 := seedAsset(t, db, func(f *models.FileModel) {
		f.PublishStatus = models.PublishStatusUnpublished
	})
	file := seedAsset(t, db, func(f *models.FileModel) {
		f.ReferenceImageIDs = models.StringArray{ref1.ID, ref2.ID, "gone-id"}
	})

	refs, err := svc.ReferenceImages(file)
	require.NoError(t, err)
	require.Len(t, refs, 2)

	got := []string{refs[0].ID, refs[1].ID}
	assert.ElementsMatch(t, []string{ref1.ID, ref2.ID}, got)
}

func TestReferenceImages_Empty(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	file := seedAsset(t, db, nil)
	refs, err := svc.ReferenceImages(file)
	require.NoError(t, err)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)
}

func TestListForAdmin_IncludesUnpublishedOwnUploads(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	seedAsset(t, db, nil)
	seedAsset(t, db, func(f *models.FileModel) {
		f.PublishStatus = models.PublishStatusUnpublished
	})
	seedAsset(t, db, func(f *models.FileModel) {
		f.UserID = "admin-2"
	})

	files, pag, err := svc.ListForAdmin("admin-1", pagination.Query{Page: 1, Size: 20}, Filter{})
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.EqualValues(t, 2, pag.Total)
}

func TestModelsForAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	for i := 0; i < 3; i++ {
		seedAsset(t, db, func(f *models.FileModel) {
			f.FileName = fmt.Sprintf("img-%d.png", i)
		})
	}
	seedAsset(t, db, func(f *models.FileModel) {
		f.FileType = models.FileTypeVideo
		f.AIModel = "flux-pro"
	})
	seedAsset(t, db, func(f *models.FileModel) {
		f.FileType = models.FileTypeVideo
		f.AIModel = "veo"
	})
	seedAsset(t, db, func(f *models.FileModel) {
		f.AIModel = ""
	})

	infos, err := svc.ModelsForAdmin("admin-1")
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "flux-pro", infos[0].Name)
	assert.Equal(t, "all", infos[0].Type)
	assert.Equal(t, "4 files", infos[0].Description)

	assert.Equal(t, "veo", infos[1].Name)
	assert.Equal(t, models.FileTypeVideo, infos[1].Type)
}

func TestStatsForAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	seedAsset(t, db, nil)
	seedAsset(t, db, func(f *models.FileModel) {
		f.FileType = models.FileTypeVideo
		f.PublishStatus = models.PublishStatusUnpublished
	})
	seedAsset(t, db, func(f *models.FileModel) {
		f.UserID = "admin-2"
	})

	stats, err := svc.StatsForAdmin("admin-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalFiles)
	assert.EqualValues(t, 1, stats.PublishedFiles)
	assert.EqualValues(t, 1, stats.ImageFiles)
	assert.EqualValues(t, 1, stats.VideoFiles)
}
