package handlers

import (
	stderrors "errors"
	"net/http"

	"charity-transparency/internal/dto"
	"charity-transparency/internal/errors"
	"charity-transparency/internal/models"
	"charity-transparency/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ExpenseHandler handles expense bookkeeping in the admin panel
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
	auditService   services.AuditServiceInterface
}

func NewExpenseHandler(expenseService services.ExpenseServiceInterface, auditService services.AuditServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		auditService:   auditService,
	}
}

// List returns expenses, newest first
// @Security BearerAuth
// @Router /admin/expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	var req dto.ListExpensesRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	activityID, err := parseOptionalUUID(req.ActivityID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid activity ID format"))
	}
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	filters := models.ExpenseFilters{
		Category:   req.Category,
		ActivityID: activityID,
		StartDate:  startDate,
		EndDate:    endDate,
	}

	offset, limit := pageBounds(req.Offset, req.Limit)
	expenses, total, err := h.expenseService.ListExpenses(filters, offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ExpensesListResponse{
		Expenses: expenses,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	})
}

// Get returns a single expense
// @Security BearerAuth
// @Router /admin/expenses/{id} [get]
func (h *ExpenseHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid expense ID format"))
	}

	expense, err := h.expenseService.GetExpense(id)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: expense})
}

// Create records a new expense on behalf of the signed in admin
// @Security BearerAuth
// @Router /admin/expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	adminID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.CreateExpense(&req, adminID)
	if err != nil {
		return h.handleError(c, err)
	}

	recordAudit(c, h.auditService, models.AuditActionExpenseCreated, models.AuditResourceExpense, expense.ID.String(), expenseAuditMetadata(expense))

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    expense,
		Message: "Expense recorded successfully",
	})
}

// Update replaces the editable fields of an expense
// @Security BearerAuth
// @Router /admin/expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid expense ID format"))
	}

	var req dto.UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.UpdateExpense(id, &req)
	if err != nil {
		return h.handleError(c, err)
	}

	recordAudit(c, h.auditService, models.AuditActionExpenseUpdated, models.AuditResourceExpense, expense.ID.String(), expenseAuditMetadata(expense))

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    expense,
		Message: "Expense updated successfully",
	})
}

// Delete removes an expense
// @Security BearerAuth
// @Router /admin/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid expense ID format"))
	}

	if err := h.expenseService.DeleteExpense(id); err != nil {
		return h.handleError(c, err)
	}

	recordAudit(c, h.auditService, models.AuditActionExpenseDeleted, models.AuditResourceExpense, id.String(), nil)

	return c.NoContent(http.StatusNoContent)
}

func expenseAuditMetadata(expense *models.Expense) models.JSONBMap {
	return models.JSONBMap{
		"amount":   expense.Amount.StringFixed(2),
		"category": expense.Category,
	}
}

func (h *ExpenseHandler) handleError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrExpenseNotFound):
		return SendError(c, errors.ExpenseNotFound)
	case stderrors.Is(err, services.ErrActivityNotFound):
		return SendError(c, errors.ActivityNotFound)
	case stderrors.Is(err, models.ErrExpenseAmountRequired), stderrors.Is(err, models.ErrExpenseNegativeAmount):
		return SendError(c, errors.ExpenseInvalidAmount)
	case stderrors.Is(err, models.ErrExpenseTitleRequired), stderrors.Is(err, models.ErrExpenseTitleTooLong):
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	default:
		return SendSystemError(c, err)
	}
}
