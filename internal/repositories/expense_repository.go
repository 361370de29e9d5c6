package repositories

import (
	"context"
	"errors"
	"fmt"

	"charity-transparency/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrExpenseNotFound = errors.New("expense not found")

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *expenseRepository) GetByID(id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.Where("id = ?", id).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &expense, nil
}

func (r *expenseRepository) Update(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	if err := r.db.Omit("Activity").Save(expense).Error; err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

func (r *expenseRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Expense{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// List returns expenses with filters and pagination, newest first
func (r *expenseRepository) List(filters models.ExpenseFilters, offset, limit int) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	var total int64

	query := r.db.Model(&models.Expense{})

	if filters.Category != "" {
		query = query.Where("category = ?", models.NormalizeCategory(filters.Category))
	}
	if filters.ActivityID != nil {
		query = query.Where("activity_id = ?", *filters.ActivityID)
	}
	if filters.StartDate != nil {
		query = query.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("created_at <= ?", *filters.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	if err := query.Offset(offset).Limit(limit).
		Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}

	return expenses, total, nil
}

// FetchForReport loads expenses for a report. Expenses have no visibility
// flag so PublicOnly does not narrow the result.
func (r *expenseRepository) FetchForReport(ctx context.Context, filter models.ReportFilter) ([]models.Expense, error) {
	var expenses []models.Expense

	query := r.db.WithContext(ctx)
	if filter.ActivityID != nil {
		query = query.Where("activity_id = ?", *filter.ActivityID)
	}

	if err := query.Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch expenses for report: %w", err)
	}
	return expenses, nil
}

func (r *expenseRepository) CountByActivity(activityID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Expense{}).Where("activity_id = ?", activityID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count expenses for activity: %w", err)
	}
	return count, nil
}
