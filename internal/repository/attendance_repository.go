package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/sitetrack/internal/model"
)

var attendanceKey = []clause.Column{{Name: "laborer_id"}, {Name: "project_id"}, {Name: "date"}}

type AttendanceFilter struct {
	ProjectID *uuid.UUID
	LaborerID *uuid.UUID
	Date      *time.Time
	Status    *model.AttendanceStatus
}

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// InsertIfMissing creates an absent record for (laborer, project, day) unless
// one exists. It reports whether a row was inserted.
func (r *AttendanceRepository) InsertIfMissing(ctx context.Context, laborerID, projectID uuid.UUID, day time.Time) (bool, error) {
	record := model.Attendance{
		LaborerID: laborerID,
		ProjectID: projectID,
		Date:      model.DateOf(day),
		Status:    model.AttendanceStatusAbsent,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: attendanceKey, DoNothing: true}).
		Create(&record)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// UpsertPresent marks (laborer, project, day) present in a single statement,
// creating the row if the reset has not run yet, and returns the stored row.
func (r *AttendanceRepository) UpsertPresent(ctx context.Context, laborerID, projectID uuid.UUID, day time.Time) (*model.Attendance, error) {
	day = model.DateOf(day)
	var saved model.Attendance
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := model.Attendance{
			LaborerID: laborerID,
			ProjectID: projectID,
			Date:      day,
			Status:    model.AttendanceStatusPresent,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: attendanceKey,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     string(model.AttendanceStatusPresent),
				"updated_at": time.Now().UTC(),
			}),
		}).Create(&record).Error
		if err != nil {
			return err
		}
		return tx.Where("laborer_id = ? AND project_id = ? AND date = ?", laborerID, projectID, day).
			First(&saved).Error
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *AttendanceRepository) scoped(ctx context.Context, userID uuid.UUID, filter AttendanceFilter) *gorm.DB {
	q := ownedBy(r.db.WithContext(ctx).Model(&model.Attendance{}), "attendance", "project_id", userID)
	if filter.ProjectID != nil {
		q = q.Where("attendance.project_id = ?", *filter.ProjectID)
	}
	if filter.LaborerID != nil {
		q = q.Where("attendance.laborer_id = ?", *filter.LaborerID)
	}
	if filter.Date != nil {
		q = q.Where("attendance.date = ?", model.DateOf(*filter.Date))
	}
	if filter.Status != nil {
		q = q.Where("attendance.status = ?", string(*filter.Status))
	}
	return q
}

func (r *AttendanceRepository) ListForOwner(ctx context.Context, userID uuid.UUID, filter AttendanceFilter, page Page) ([]model.Attendance, int64, error) {
	var total int64
	if err := r.scoped(ctx, userID, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.Attendance
	q := r.scoped(ctx, userID, filter).
		Select("attendance.*").
		Order("attendance.date DESC").
		Order("attendance.laborer_id ASC")
	if err := page.apply(q).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *AttendanceRepository) CountForOwner(ctx context.Context, userID uuid.UUID, filter AttendanceFilter) (int64, error) {
	var total int64
	err := r.scoped(ctx, userID, filter).Count(&total).Error
	return total, err
}

// CountForLaborerOnProject counts records regardless of status.
func (r *AttendanceRepository) CountForLaborerOnProject(ctx context.Context, laborerID, projectID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("laborer_id = ? AND project_id = ?", laborerID, projectID).
		Count(&total).Error
	return total, err
}
