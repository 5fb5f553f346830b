package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainerrors "asset-ledger.backend/internal/domain/errors"
	"asset-ledger.backend/internal/interfaces/http/response"
	"asset-ledger.backend/internal/usecases"
)

type balanceService interface {
	GetBalance(ctx context.Context, userID, assetID uint) (decimal.Decimal, error)
}

// BalanceHandler handles balance endpoints
type BalanceHandler struct {
	balanceUsecase balanceService
}

// NewBalanceHandler creates a new balance handler
func NewBalanceHandler(balanceUsecase *usecases.BalanceUsecase) *BalanceHandler {
	return &BalanceHandler{balanceUsecase: balanceUsecase}
}

// GetBalance returns the wallet amount for one user and one asset
// GET /balance/:user_id/:asset_id
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user id"))
		return
	}
	assetID, err := parseIDParam(c, "asset_id")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid asset id"))
		return
	}

	amount, err := h.balanceUsecase.GetBalance(c.Request.Context(), userID, assetID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrWalletNotFound) {
			response.Error(c, domainerrors.NotFound(
				fmt.Sprintf("Asset with id: %d or user with id: %d not found.", assetID, userID)))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, amount)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
