package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/sitetrack/internal/model"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetForOwner returns gorm.ErrRecordNotFound both when the project does not
// exist and when it belongs to another user.
func (r *ProjectRepository) GetForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) ListForOwner(ctx context.Context, userID uuid.UUID, page Page) ([]model.Project, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Project{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []model.Project
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Order("name ASC")
	if err := page.apply(q).Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).
		Model(project).
		Select("name", "location", "start_date", "end_date", "updated_at").
		Updates(project).Error
}

// Delete removes the project and everything beneath it in one transaction.
// The foreign keys cascade as well; deleting children explicitly keeps the
// behaviour identical on drivers where foreign keys are not enforced.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		laborerIDs := tx.Model(&model.Laborer{}).Select("id").Where("assigned_project_id = ?", id)
		if err := tx.Where("project_id = ? OR laborer_id IN (?)", id, laborerIDs).Delete(&model.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assigned_project_id = ?", id).Delete(&model.Laborer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.DailyProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Expense{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
