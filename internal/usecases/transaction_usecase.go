package usecases

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"asset-ledger.backend/internal/domain/entities"
	domainerrors "asset-ledger.backend/internal/domain/errors"
	"asset-ledger.backend/internal/domain/repositories"
)

// TransactionUsecase processes withdrawals and deposits. Each operation runs
// as one unit of work: every read and write commits together or not at all.
type TransactionUsecase struct {
	walletRepo repositories.WalletRepository
	assetRepo  repositories.AssetRepository
	txRepo     repositories.TransactionRepository
	uow        repositories.UnitOfWork
	cache      BalanceCache
}

// NewTransactionUsecase creates a new transaction usecase. cache may be nil.
func NewTransactionUsecase(
	walletRepo repositories.WalletRepository,
	assetRepo repositories.AssetRepository,
	txRepo repositories.TransactionRepository,
	uow repositories.UnitOfWork,
	cache BalanceCache,
) *TransactionUsecase {
	return &TransactionUsecase{
		walletRepo: walletRepo,
		assetRepo:  assetRepo,
		txRepo:     txRepo,
		uow:        uow,
		cache:      cache,
	}
}

// CreateWithdrawal debits the user's wallet and records a withdrawal entry.
//
// The wallet is looked up by user_id alone, not (user_id, asset_id). For a
// user holding several wallets the first one is selected whatever the
// requested asset. Deliberately kept for parity with the system this
// replaces; see DESIGN.md.
func (u *TransactionUsecase) CreateWithdrawal(ctx context.Context, input *entities.WithdrawalInput) (*entities.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerrors.ErrInvalidInput
	}

	var txn *entities.Transaction
	var touched []*entities.Wallet

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		wallet, err := u.walletRepo.GetFirstByUser(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.ErrUserNotFound
			}
			return err
		}

		if wallet.Amount.LessThan(input.Amount) {
			return domainerrors.ErrInsufficientFunds
		}

		// Conditional update; a concurrent withdrawal that drained the
		// wallet between the read and this point surfaces here.
		if err := u.walletRepo.Debit(ctx, wallet.ID, input.Amount); err != nil {
			return err
		}
		touched = append(touched, wallet)

		txn = &entities.Transaction{
			UserID:  null.UintFrom(input.UserID),
			AssetID: input.AssetID,
			Type:    entities.TransactionTypeWithdrawal,
			Amount:  input.Amount,
			Address: input.Address,
		}
		if err := u.txRepo.Create(ctx, txn); err != nil {
			return err
		}

		credited, err := u.creditMatchingWallet(ctx, input.Address, input.Amount)
		if err != nil {
			return err
		}
		if credited != nil {
			touched = append(touched, credited)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidateBalances(ctx, touched)
	return txn, nil
}

// CreateDeposit records a deposit entry for an asset. Deposits arrive from
// outside the platform, so no user is attached and no wallet is debited.
func (u *TransactionUsecase) CreateDeposit(ctx context.Context, input *entities.DepositInput) (*entities.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerrors.ErrInvalidInput
	}

	var txn *entities.Transaction
	var touched []*entities.Wallet

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := u.assetRepo.GetByID(ctx, input.AssetID); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.ErrAssetNotFound
			}
			return err
		}

		txn = &entities.Transaction{
			AssetID: input.AssetID,
			Type:    entities.TransactionTypeDeposit,
			Amount:  input.Amount,
			Address: input.Address,
		}
		if err := u.txRepo.Create(ctx, txn); err != nil {
			return err
		}

		credited, err := u.creditMatchingWallet(ctx, input.Address, input.Amount)
		if err != nil {
			return err
		}
		if credited != nil {
			touched = append(touched, credited)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidateBalances(ctx, touched)
	return txn, nil
}

// creditMatchingWallet implements internal transfer detection: a transaction
// whose address belongs to a wallet hosted on this platform credits that
// wallet, regardless of which user or asset originated the transaction.
// No match means the funds leave (or arrive from outside) the system.
//
// The asset of the matched wallet is not checked against the transaction's
// asset; a cross-asset match still credits.
func (u *TransactionUsecase) creditMatchingWallet(ctx context.Context, address string, amount decimal.Decimal) (*entities.Wallet, error) {
	wallet, err := u.walletRepo.GetByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := u.walletRepo.Credit(ctx, wallet.ID, amount); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (u *TransactionUsecase) invalidateBalances(ctx context.Context, wallets []*entities.Wallet) {
	if u.cache == nil {
		return
	}
	for _, w := range wallets {
		u.cache.Invalidate(ctx, w.UserID, w.AssetID)
	}
}
