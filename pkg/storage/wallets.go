package storage

import (
	"context"

	"github.com/tradehub/escrow-settlement/pkg/models"
)

// WalletStore defines the interface for managing wallets. Balances are only
// ever adjusted relatively, inside the storage transaction of the operation
// that justifies the movement; there is no absolute balance write.
type WalletStore interface {
	// GetWallet retrieves a user's wallet by their user ID.
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)

	// CreateWallet creates a new wallet for a user.
	CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error)

	// ListWallets retrieves all wallets from the storage.
	ListWallets(ctx context.Context) ([]models.Wallet, error)
}
