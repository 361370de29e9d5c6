package services

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"charity-transparency/internal/dto"
	"charity-transparency/internal/models"
	"charity-transparency/internal/repositories"
	"charity-transparency/internal/repositories/repository_mocks"
	"charity-transparency/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	expenseRepo  *repository_mocks.MockExpenseRepositoryInterface
	activityRepo *repository_mocks.MockActivityRepositoryInterface
	metrics      *service_mocks.MockMetricsRecorderInterface
	service      ExpenseServiceInterface
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.activityRepo = repository_mocks.NewMockActivityRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.service = NewExpenseService(s.expenseRepo, s.activityRepo, s.metrics, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *ExpenseServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestExpenseServiceSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_General() {
	adminID := uuid.New()
	req := &dto.CreateExpenseRequest{
		Title:    "  Rice for kitchen ",
		Amount:   decimal.NewFromInt(350000),
		Category: "food",
	}

	s.expenseRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.metrics.EXPECT().IncrementCounter(MetricExpenseRecorded, map[string]string{"operation": "create"})

	expense, err := s.service.CreateExpense(req, adminID)

	s.Require().NoError(err)
	s.Equal("Rice for kitchen", expense.Title)
	s.Equal(models.CategoryFood, expense.Category)
	s.Nil(expense.ActivityID)
	s.Require().NotNil(expense.RecordedBy)
	s.Equal(adminID, *expense.RecordedBy)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_BlankCategoryBecomesOther() {
	req := &dto.CreateExpenseRequest{Title: "Misc", Amount: decimal.NewFromInt(1000), Category: "  "}

	s.expenseRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.metrics.EXPECT().IncrementCounter(MetricExpenseRecorded, gomock.Any())

	expense, err := s.service.CreateExpense(req, uuid.Nil)

	s.Require().NoError(err)
	s.Equal(models.CategoryOther, expense.Category)
	s.Nil(expense.RecordedBy)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_UnpublishedActivityAllowed() {
	activity := &models.Activity{ID: uuid.New(), Title: "Draft", Slug: "draft"}
	req := &dto.CreateExpenseRequest{ActivityID: &activity.ID, Title: "Tents", Amount: decimal.NewFromInt(90000)}

	s.activityRepo.EXPECT().GetByID(activity.ID).Return(activity, nil)
	s.expenseRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.metrics.EXPECT().IncrementCounter(MetricExpenseRecorded, gomock.Any())

	expense, err := s.service.CreateExpense(req, uuid.New())

	s.Require().NoError(err)
	s.Require().NotNil(expense.ActivityID)
	s.Equal(activity.ID, *expense.ActivityID)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_UnknownActivity() {
	id := uuid.New()
	req := &dto.CreateExpenseRequest{ActivityID: &id, Title: "Tents", Amount: decimal.NewFromInt(90000)}

	s.activityRepo.EXPECT().GetByID(id).Return(nil, repositories.ErrActivityNotFound)

	_, err := s.service.CreateExpense(req, uuid.New())

	s.ErrorIs(err, ErrActivityNotFound)
}

func (s *ExpenseServiceTestSuite) TestUpdateExpense() {
	existing := &models.Expense{ID: uuid.New(), Title: "Old", Amount: decimal.NewFromInt(1000), Category: models.CategoryOther}
	req := &dto.UpdateExpenseRequest{Title: "Medicine", Amount: decimal.NewFromInt(2000), Category: "HEALTH"}

	s.expenseRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.expenseRepo.EXPECT().Update(existing).Return(nil)
	s.metrics.EXPECT().IncrementCounter(MetricExpenseRecorded, map[string]string{"operation": "update"})

	expense, err := s.service.UpdateExpense(existing.ID, req)

	s.Require().NoError(err)
	s.Equal("Medicine", expense.Title)
	s.Equal(models.CategoryHealth, expense.Category)
	s.True(expense.Amount.Equal(decimal.NewFromInt(2000)))
}

func (s *ExpenseServiceTestSuite) TestUpdateExpense_NotFound() {
	id := uuid.New()
	s.expenseRepo.EXPECT().GetByID(id).Return(nil, repositories.ErrExpenseNotFound)

	_, err := s.service.UpdateExpense(id, &dto.UpdateExpenseRequest{Title: "x", Amount: decimal.NewFromInt(1)})

	s.ErrorIs(err, ErrExpenseNotFound)
}

func (s *ExpenseServiceTestSuite) TestDeleteExpense() {
	id := uuid.New()
	s.expenseRepo.EXPECT().Delete(id).Return(nil)
	s.metrics.EXPECT().IncrementCounter(MetricExpenseRecorded, map[string]string{"operation": "delete"})

	s.NoError(s.service.DeleteExpense(id))
}

func (s *ExpenseServiceTestSuite) TestDeleteExpense_NotFound() {
	id := uuid.New()
	s.expenseRepo.EXPECT().Delete(id).Return(repositories.ErrExpenseNotFound)

	s.ErrorIs(s.service.DeleteExpense(id), ErrExpenseNotFound)
}

func (s *ExpenseServiceTestSuite) TestListExpenses_Error() {
	s.expenseRepo.EXPECT().List(gomock.Any(), 0, 10).Return(nil, int64(0), errors.New("query failed"))

	_, _, err := s.service.ListExpenses(models.ExpenseFilters{}, 0, 10)

	s.Error(err)
}
