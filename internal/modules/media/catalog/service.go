package catalog

import (
	"errors"
	"fmt"

	"github.com/aigallery/core/internal/models"
	"github.com/aigallery/core/internal/pkg/errs"
	"github.com/aigallery/core/internal/pkg/pagination"
	"github.com/aigallery/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Service is the read side of the library: filtered range queries and
// counts over persisted assets. It never mutates anything.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListPublished returns the public catalog page: published assets only.
func (s *Service) ListPublished(q pagination.Query, f Filter) ([]models.FileModel, response.Pagination, error) {
	tx := s.db.Model(&models.FileModel{}).
		Where("publish_status = ?", models.PublishStatusPublished)
	tx = applyFilter(tx, f).Order("created_at DESC")

	var files []models.FileModel
	pag, err := pagination.Paginate(tx, q, &files)
	return files, pag, err
}

// GetPublished returns one published asset by id.
func (s *Service) GetPublished(id string) (*models.FileModel, error) {
	var file models.FileModel
	err := s.db.Where("id = ? AND publish_status = ?", id, models.PublishStatusPublished).
		First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.KindNotFound, "File not found")
		}
		return nil, err
	}
	return &file, nil
}

// ReferenceImages resolves the assets named by file's reference id list.
// Ids pointing at deleted assets are skipped; the detail view tolerates a
// shorter list rather than failing.
func (s *Service) ReferenceImages(file *models.FileModel) ([]models.FileModel, error) {
	if len(file.ReferenceImageIDs) == 0 {
		return []models.FileModel{}, nil
	}
	var refs []models.FileModel
	err := s.db.Where("id IN ?", []string(file.ReferenceImageIDs)).Find(&refs).Error
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// ListForAdmin returns the operator's own uploads in every publish state.
func (s *Service) ListForAdmin(adminID string, q pagination.Query, f Filter) ([]models.FileModel, response.Pagination, error) {
	tx := s.db.Model(&models.FileModel{}).Where("user_id = ?", adminID)
	tx = applyFilter(tx, f).Order("created_at DESC")

	var files []models.FileModel
	pag, err := pagination.Paginate(tx, q, &files)
	return files, pag, err
}

// ModelsForAdmin aggregates the distinct generating models across the
// operator's uploads.
func (s *Service) ModelsForAdmin(adminID string) ([]ModelInfo, error) {
	type row struct {
		AIModel  string
		FileType string
		N        int64
	}
	var rows []row
	err := s.db.Model(&models.FileModel{}).
		Select("ai_model, file_type, COUNT(*) AS n").
		Where("user_id = ? AND ai_model <> ''", adminID).
		Group("ai_model").Group("file_type").
		Order("ai_model").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	type tally struct{ images, videos, total int64 }
	byModel := make(map[string]*tally)
	order := make([]string, 0)
	for _, r := range rows {
		t, ok := byModel[r.AIModel]
		if !ok {
			t = &tally{}
			byModel[r.AIModel] = t
			order = append(order, r.AIModel)
		}
		switch r.FileType {
		case models.FileTypeImage:
			t.images += r.N
		case models.FileTypeVideo:
			t.videos += r.N
		}
		t.total += r.N
	}

	infos := make([]ModelInfo, 0, len(order))
	for _, name := range order {
		t := byModel[name]
		kind := models.FileTypeImage
		switch {
		case t.images > 0 && t.videos > 0:
			kind = "all"
		case t.videos > 0:
			kind = models.FileTypeVideo
		}
		infos = append(infos, ModelInfo{
			ID:          name,
			Name:        name,
			Type:        kind,
			Description: fmt.Sprintf("%d files", t.total),
			IsActive:    true,
		})
	}
	return infos, nil
}

// StatsForAdmin counts the operator's uploads for the dashboard.
func (s *Service) StatsForAdmin(adminID string) (*Stats, error) {
	base := func() *gorm.DB {
		return s.db.Model(&models.FileModel{}).Where("user_id = ?", adminID)
	}

	var stats Stats
	if err := base().Count(&stats.TotalFiles).Error; err != nil {
		return nil, err
	}
	if err := base().Where("publish_status = ?", models.PublishStatusPublished).
		Count(&stats.PublishedFiles).Error; err != nil {
		return nil, err
	}
	if err := base().Where("file_type = ?", models.FileTypeImage).
		Count(&stats.ImageFiles).Error; err != nil {
		return nil, err
	}
	if err := base().Where("file_type = ?", models.FileTypeVideo).
		Count(&stats.VideoFiles).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func applyFilter(tx *gorm.DB, f Filter) *gorm.DB {
	if f.FileType != "" && f.FileType != "all" {
		tx = tx.Where("file_type = ?", f.FileType)
	}
	if f.AIModel != "" {
		tx = tx.Where("ai_model = ?", f.AIModel)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		tx = tx.Where("ai_model LIKE ? OR prompt LIKE ?", pattern, pattern)
	}
	return tx
}
