// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/vm-it-consulting/moneyapp/internal/domain"
	"github.com/vm-it-consulting/moneyapp/pkg/errorspkg"
	"github.com/vm-it-consulting/moneyapp/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Create(ctx context.Context, rawName, amount string, txType domain.TransactionType, accountID int64) (domain.Transaction, error)
	Update(ctx context.Context, id int64, amount string, txType domain.TransactionType) (domain.Transaction, error)
	Delete(ctx context.Context, id int64) (domain.Transaction, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error)
	ListWithinBudget(ctx context.Context, accountID int64, budget string) ([]domain.Transaction, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

func bindErrMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}

func statusFromErr(err error) int {
	switch err {
	case domain.ErrInvalidTransactionType, domain.ErrInvalidAmount, domain.ErrNegativeAmount:
		return http.StatusBadRequest
	case domain.ErrAccountNotFound, domain.ErrTransactionNotFound:
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

func renderErr(gctx *gin.Context, err error) {
	status := statusFromErr(err)
	if status == http.StatusInternalServerError {
		err = errorspkg.ErrInternal
	}

	gctx.JSON(status, web.Error(err))
}

// Type is bound through a pointer because 0 (out) is a meaningful value
// that the required rule would otherwise reject.
type createRequest struct {
	Name      string                  `json:"name" binding:"required"`
	Amount    string                  `json:"amount" binding:"required"`
	Type      *domain.TransactionType `json:"type" binding:"required"`
	AccountID int64                   `json:"account_id" binding:"required,min=1"`
}

type data struct {
	Transaction domain.Transaction `json:"transaction"`
}

// Create handles http request to create transaction.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	transaction, err := h.service.Create(ctx, req.Name, req.Amount, *req.Type, req.AccountID)
	if err != nil {
		renderErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{transaction}})
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type updateRequest struct {
	Amount string                  `json:"amount" binding:"required"`
	Type   *domain.TransactionType `json:"type" binding:"required"`
}

// Update handles http request to amend a transaction's amount and type.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	var req updateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	transaction, err := h.service.Update(ctx, uri.ID, req.Amount, *req.Type)
	if err != nil {
		renderErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{transaction}})
}

// Delete handles http request to delete transaction.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	transaction, err := h.service.Delete(ctx, uri.ID)
	if err != nil {
		renderErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{transaction}})
}

// Get handles http request to get transaction.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	transaction, err := h.service.Get(ctx, uri.ID)
	if err != nil {
		renderErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{transaction}})
}

type dataTransactions struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// ListByAccount handles http request to list the account's transactions.
func (h *Handler) ListByAccount(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	transactions, err := h.service.ListByAccount(ctx, uri.ID)
	if err != nil {
		renderErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataTransactions{transactions}})
}

type budgetRequest struct {
	ID     int64  `uri:"id" binding:"required,min=1"`
	Amount string `uri:"amount" binding:"required"`
}

// ListWithinBudget handles http request to list the transactions that fit
// under the given running budget.
func (h *Handler) ListWithinBudget(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri budgetRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	transactions, err := h.service.ListWithinBudget(ctx, uri.ID, uri.Amount)
	if err != nil {
		renderErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataTransactions{transactions}})
}
