package payroll

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
)

// Repository defines persistence operations for employees and payroll entries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	FindEmployeeByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListEmployees(ctx context.Context, activeOnly bool) ([]models.Employee, error)

	CreateEntry(ctx context.Context, entry *models.PayrollEntry) (*models.PayrollEntry, error)
	FindEntryByID(ctx context.Context, id uuid.UUID) (*models.PayrollEntry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListEntriesByPeriod(ctx context.Context, period string) ([]models.PayrollEntry, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a payroll repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	if err := r.db.WithContext(ctx).Create(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

func (r *repository) FindEmployeeByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *repository) UpdateEmployee(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListEmployees(ctx context.Context, activeOnly bool) ([]models.Employee, error) {
	query := r.db.WithContext(ctx).Order("code ASC")
	if activeOnly {
		query = query.Where("is_active = TRUE")
	}
	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *repository) CreateEntry(ctx context.Context, entry *models.PayrollEntry) (*models.PayrollEntry, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *repository) FindEntryByID(ctx context.Context, id uuid.UUID) (*models.PayrollEntry, error) {
	var entry models.PayrollEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) UpdateEntry(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PayrollEntry{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListEntriesByPeriod(ctx context.Context, period string) ([]models.PayrollEntry, error) {
	var entries []models.PayrollEntry
	if err := r.db.WithContext(ctx).
		Where("period = ?", period).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
