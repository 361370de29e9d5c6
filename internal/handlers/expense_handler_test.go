package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"charity-transparency/internal/dto"
	apperrors "charity-transparency/internal/errors"
	"charity-transparency/internal/models"
	"charity-transparency/internal/services"
	"charity-transparency/internal/services/service_mocks"

	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ExpenseHandlerSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	expenseService *service_mocks.MockExpenseServiceInterface
	auditService   *service_mocks.MockAuditServiceInterface
	handler        *ExpenseHandler
	e              *echo.Echo
}

func TestExpenseHandler(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerSuite))
}

func (s *ExpenseHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenseService = service_mocks.NewMockExpenseServiceInterface(s.ctrl)
	s.auditService = service_mocks.NewMockAuditServiceInterface(s.ctrl)
	s.handler = NewExpenseHandler(s.expenseService, s.auditService)
	s.e = newTestEcho()
}

func (s *ExpenseHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ExpenseHandlerSuite) TestCreate() {
	c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/admin/expenses", map[string]interface{}{
		"title":    "Blankets",
		"amount":   "125000.50",
		"category": "Logistics",
	})
	adminID := withAdmin(c)

	s.expenseService.EXPECT().CreateExpense(gomock.Any(), adminID).DoAndReturn(
		func(req *dto.CreateExpenseRequest, _ uuid.UUID) (*models.Expense, error) {
			s.True(req.Amount.Equal(decimal.RequireFromString("125000.50")))
			return &models.Expense{ID: uuid.New(), Title: req.Title, Amount: req.Amount, Category: req.Category}, nil
		})
	s.auditService.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, log *models.AuditLog) error {
		s.Equal(models.AuditActionExpenseCreated, log.Action)
		s.Equal("125000.50", log.Metadata["amount"])
		s.Equal("Logistics", log.Metadata["category"])
		return nil
	})

	s.Require().NoError(s.handler.Create(c))

	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), "Blankets")
}

func (s *ExpenseHandlerSuite) TestCreate_MissingTitle() {
	c, _ := newJSONContext(s.e, http.MethodPost, "/", map[string]interface{}{"amount": 100})
	withAdmin(c)

	err := s.handler.Create(c)

	var validationErrs validator.ValidationErrors
	s.ErrorAs(err, &validationErrs)
}

func (s *ExpenseHandlerSuite) TestCreate_UnknownActivity() {
	c, rec := newJSONContext(s.e, http.MethodPost, "/", map[string]interface{}{
		"title":      "Fuel",
		"amount":     100,
		"activityId": uuid.NewString(),
	})
	withAdmin(c)
	s.expenseService.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(nil, services.ErrActivityNotFound)

	s.Require().NoError(s.handler.Create(c))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(apperrors.ActivityNotFound), decodeError(rec).Error.Code)
}

func (s *ExpenseHandlerSuite) TestUpdate_NotFound() {
	id := uuid.New()
	c, rec := newJSONContext(s.e, http.MethodPut, "/", map[string]interface{}{"title": "Fuel", "amount": 100})
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	s.expenseService.EXPECT().UpdateExpense(id, gomock.Any()).Return(nil, services.ErrExpenseNotFound)

	s.Require().NoError(s.handler.Update(c))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(apperrors.ExpenseNotFound), decodeError(rec).Error.Code)
}

func (s *ExpenseHandlerSuite) TestDelete() {
	id := uuid.New()
	c, rec := newJSONContext(s.e, http.MethodDelete, "/", nil)
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	s.expenseService.EXPECT().DeleteExpense(id).Return(nil)
	// a failed audit write must not fail the delete
	s.auditService.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("audit store down"))

	s.Require().NoError(s.handler.Delete(c))

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *ExpenseHandlerSuite) TestList_ClampsLimit() {
	s.expenseService.EXPECT().ListExpenses(gomock.Any(), 5, 20).Return([]models.Expense{}, int64(0), nil)

	c, rec := newGetContext(s.e, "/api/v1/admin/expenses?offset=5&category=Food")
	s.Require().NoError(s.handler.List(c))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"limit":20`)
}

func (s *ExpenseHandlerSuite) TestList_BadDateRange() {
	c, rec := newGetContext(s.e, "/api/v1/admin/expenses?startDate=2025-06-10&endDate=2025-06-01")
	s.Require().NoError(s.handler.List(c))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(apperrors.ValidationInvalidFormat), decodeError(rec).Error.Code)
}
