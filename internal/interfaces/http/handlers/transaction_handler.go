package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-ledger.backend/internal/domain/entities"
	domainerrors "asset-ledger.backend/internal/domain/errors"
	"asset-ledger.backend/internal/interfaces/http/response"
	"asset-ledger.backend/internal/usecases"
)

type transactionService interface {
	CreateWithdrawal(ctx context.Context, input *entities.WithdrawalInput) (*entities.Transaction, error)
	CreateDeposit(ctx context.Context, input *entities.DepositInput) (*entities.Transaction, error)
}

// TransactionHandler handles withdrawal and deposit endpoints
type TransactionHandler struct {
	transactionUsecase transactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionUsecase *usecases.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{transactionUsecase: transactionUsecase}
}

// CreateWithdrawal debits a wallet and records a withdrawal
// POST /create/withdrawal
func (h *TransactionHandler) CreateWithdrawal(c *gin.Context) {
	var input entities.WithdrawalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	txn, err := h.transactionUsecase.CreateWithdrawal(c.Request.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrUserNotFound):
			response.Error(c, domainerrors.NotFound(
				fmt.Sprintf("User with id: %d not found.", input.UserID)))
		case errors.Is(err, domainerrors.ErrInsufficientFunds):
			response.Error(c, domainerrors.UnprocessableEntity(
				fmt.Sprintf("User with id: %d does not have enough funds.", input.UserID)))
		case errors.Is(err, domainerrors.ErrInvalidInput):
			response.Error(c, domainerrors.BadRequest("Amount must be greater than zero."))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, txn)
}

// CreateDeposit records a deposit
// POST /create/deposit
func (h *TransactionHandler) CreateDeposit(c *gin.Context) {
	var input entities.DepositInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	txn, err := h.transactionUsecase.CreateDeposit(c.Request.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrAssetNotFound):
			response.Error(c, domainerrors.NotFound(
				fmt.Sprintf("Asset with id: %d not found.", input.AssetID)))
		case errors.Is(err, domainerrors.ErrInvalidInput):
			response.Error(c, domainerrors.BadRequest("Amount must be greater than zero."))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, txn)
}
