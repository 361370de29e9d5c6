package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"charity-transparency/internal/dto"
	"charity-transparency/internal/models"
	"charity-transparency/internal/repositories"

	"github.com/google/uuid"
)

var ErrExpenseNotFound = errors.New("expense not found")

// ExpenseService records money paid out by the organisation
type ExpenseService struct {
	expenseRepo  repositories.ExpenseRepositoryInterface
	activityRepo repositories.ActivityRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	activityRepo repositories.ActivityRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenseServiceInterface {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		activityRepo: activityRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

func (s *ExpenseService) CreateExpense(req *dto.CreateExpenseRequest, recordedBy uuid.UUID) (*models.Expense, error) {
	activityID, err := s.resolveActivity(req.ActivityID)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ActivityID:  activityID,
		Title:       strings.TrimSpace(req.Title),
		Amount:      req.Amount,
		Category:    models.NormalizeCategory(req.Category),
		Description: strings.TrimSpace(req.Description),
		ReceiptURL:  strings.TrimSpace(req.ReceiptURL),
	}
	if recordedBy != uuid.Nil {
		expense.RecordedBy = &recordedBy
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.recorded("create", expense)
	return expense, nil
}

func (s *ExpenseService) UpdateExpense(id uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.GetExpense(id)
	if err != nil {
		return nil, err
	}

	activityID, err := s.resolveActivity(req.ActivityID)
	if err != nil {
		return nil, err
	}

	expense.ActivityID = activityID
	expense.Title = strings.TrimSpace(req.Title)
	expense.Amount = req.Amount
	expense.Category = models.NormalizeCategory(req.Category)
	expense.Description = strings.TrimSpace(req.Description)
	expense.ReceiptURL = strings.TrimSpace(req.ReceiptURL)

	if err := s.expenseRepo.Update(expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.recorded("update", expense)
	return expense, nil
}

func (s *ExpenseService) DeleteExpense(id uuid.UUID) error {
	if err := s.expenseRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.metrics.IncrementCounter(MetricExpenseRecorded, map[string]string{"operation": "delete"})
	s.logger.Info("expense deleted", "expense_id", id)
	return nil
}

func (s *ExpenseService) GetExpense(id uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

func (s *ExpenseService) ListExpenses(filters models.ExpenseFilters, offset, limit int) ([]models.Expense, int64, error) {
	expenses, total, err := s.expenseRepo.List(filters, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, total, nil
}

// resolveActivity checks that a referenced activity exists. Expenses may be
// booked against unpublished activities.
func (s *ExpenseService) resolveActivity(activityID *uuid.UUID) (*uuid.UUID, error) {
	if activityID == nil || *activityID == uuid.Nil {
		return nil, nil
	}

	if _, err := s.activityRepo.GetByID(*activityID); err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	id := *activityID
	return &id, nil
}

func (s *ExpenseService) recorded(operation string, expense *models.Expense) {
	s.metrics.IncrementCounter(MetricExpenseRecorded, map[string]string{"operation": operation})
	s.logger.Info("expense recorded",
		"operation", operation,
		"expense_id", expense.ID,
		"category", expense.Category,
		"activity_id", expense.ActivityID)
}
