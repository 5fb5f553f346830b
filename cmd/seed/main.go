package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"asset-ledger.backend/internal/config"
	"asset-ledger.backend/internal/domain/entities"
	domainerrors "asset-ledger.backend/internal/domain/errors"
	"asset-ledger.backend/internal/infrastructure/datasources/postgres"
	"asset-ledger.backend/internal/infrastructure/repositories"
)

// One-shot provisioning of a user, an asset and a funded wallet. The API
// itself never creates these, so operators run this before pointing
// traffic at a fresh database. Safe to re-run: existing rows are reused.
//
// Usage:
//
//	seed -username alice -asset BTC -address addr-1 -amount 10.5

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	openDB     = postgres.Open
	migrateDB  = postgres.Migrate
)

type seedInput struct {
	username    string
	assetSymbol string
	assetName   string
	address     string
	amount      decimal.Decimal
}

func main() {
	if err := runSeed(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func parseSeedFlags(args []string) (*seedInput, error) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	in := &seedInput{}
	var amount string
	fs.StringVar(&in.username, "username", "", "username to provision")
	fs.StringVar(&in.assetSymbol, "asset", "", "asset symbol to provision")
	fs.StringVar(&in.assetName, "asset-name", "", "asset display name (defaults to the symbol)")
	fs.StringVar(&in.address, "address", "", "wallet address")
	fs.StringVar(&amount, "amount", "0", "initial wallet balance")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if in.username == "" || in.assetSymbol == "" || in.address == "" {
		return nil, errors.New("-username, -asset and -address are required")
	}
	if in.assetName == "" {
		in.assetName = in.assetSymbol
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if parsed.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative, got %s", parsed)
	}
	in.amount = parsed
	return in, nil
}

func runSeed(args []string) error {
	in, err := parseSeedFlags(args)
	if err != nil {
		return err
	}

	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := loadCfg()

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrateDB(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return seed(context.Background(), db, in)
}

func seed(ctx context.Context, db *gorm.DB, in *seedInput) error {
	userRepo := repositories.NewUserRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	walletRepo := repositories.NewWalletRepository(db)

	user, err := userRepo.GetByUsername(ctx, in.username)
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		user = &entities.User{Username: in.username}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		log.Printf("created user %q (id=%d)", user.Username, user.ID)
	case err != nil:
		return err
	default:
		log.Printf("user %q already exists (id=%d)", user.Username, user.ID)
	}

	asset, err := assetRepo.GetBySymbol(ctx, in.assetSymbol)
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		asset = &entities.Asset{Symbol: in.assetSymbol, Name: in.assetName}
		if err := assetRepo.Create(ctx, asset); err != nil {
			return fmt.Errorf("failed to create asset: %w", err)
		}
		log.Printf("created asset %q (id=%d)", asset.Symbol, asset.ID)
	case err != nil:
		return err
	default:
		log.Printf("asset %q already exists (id=%d)", asset.Symbol, asset.ID)
	}

	wallet, err := walletRepo.GetByAddress(ctx, in.address)
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		wallet = &entities.Wallet{
			UserID:  user.ID,
			AssetID: asset.ID,
			Address: in.address,
			Amount:  in.amount,
		}
		if err := walletRepo.Create(ctx, wallet); err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}
		log.Printf("created wallet %q with balance %s (id=%d)", wallet.Address, wallet.Amount, wallet.ID)
	case err != nil:
		return err
	default:
		if wallet.UserID != user.ID || wallet.AssetID != asset.ID {
			return fmt.Errorf("address %q is already held by user %d asset %d", in.address, wallet.UserID, wallet.AssetID)
		}
		log.Printf("wallet %q already exists with balance %s (id=%d)", wallet.Address, wallet.Amount, wallet.ID)
	}

	return nil
}
