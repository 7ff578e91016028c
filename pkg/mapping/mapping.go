// Package mapping converts between domain models and API wire models.
package mapping

import (
	"github.com/tradehub/escrow-settlement/pkg/api"
	"github.com/tradehub/escrow-settlement/pkg/models"
)

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
// PaymentRef is deliberately dropped: the gateway reference never leaves the server.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:              tx.Id,
		ListingId:       tx.ListingId,
		BuyerId:         tx.BuyerId,
		SellerId:        tx.SellerId,
		Amount:          tx.Amount,
		Fee:             tx.Fee,
		NetAmount:       tx.NetAmount,
		PaymentMethod:   tx.PaymentMethod,
		Status:          api.TransactionStatus(tx.Status),
		BuyerConfirmed:  tx.BuyerConfirmed,
		SellerConfirmed: tx.SellerConfirmed,
		CompletedAt:     tx.CompletedAt,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}

// ToApiListing converts a domain Listing model to an API Listing model.
func ToApiListing(listing *models.Listing) *api.Listing {
	return &api.Listing{
		Id:         listing.Id,
		SellerId:   listing.SellerId,
		Title:      listing.Title,
		Price:      listing.Price,
		IsPromoted: listing.IsPromoted,
		IsActive:   listing.IsActive,
		IsSold:     listing.IsSold,
		CreatedAt:  listing.CreatedAt,
	}
}

// ToDomainNewListing converts an API NewListing model to a domain Listing
// model. IDs and timestamps are assigned by the storage layer.
func ToDomainNewListing(newListing *api.NewListing, sellerID string) *models.Listing {
	return &models.Listing{
		SellerId:   sellerID,
		Title:      newListing.Title,
		Price:      newListing.Price,
		IsPromoted: newListing.IsPromoted,
		IsActive:   true,
	}
}

// ToApiWallet converts a domain Wallet model to an API Wallet model.
func ToApiWallet(wallet *models.Wallet) *api.Wallet {
	return &api.Wallet{
		UserId:    wallet.UserId,
		Name:      wallet.Name,
		Balance:   wallet.Balance,
		PayoutKey: wallet.PayoutKey,
		IsAdmin:   wallet.IsAdmin,
		CreatedAt: wallet.CreatedAt,
	}
}

// ToDomainNewWallet converts an API NewWallet model to a domain Wallet model.
// New wallets always start at zero balance and without admin rights.
func ToDomainNewWallet(newWallet *api.NewWallet) *models.Wallet {
	return &models.Wallet{
		UserId: newWallet.UserId,
		Name:   newWallet.Name,
	}
}

// ToApiDispute converts a domain Dispute model to an API Dispute model.
func ToApiDispute(dispute *models.Dispute) *api.Dispute {
	return &api.Dispute{
		Id:            dispute.Id,
		TransactionId: dispute.TransactionId,
		ReporterId:    dispute.ReporterId,
		Reason:        dispute.Reason,
		Evidence:      dispute.Evidence,
		Status:        string(dispute.Status),
		Resolution:    string(dispute.Resolution),
		ResolvedBy:    dispute.ResolvedBy,
		ResolvedAt:    dispute.ResolvedAt,
		CreatedAt:     dispute.CreatedAt,
	}
}

// ToDomainNewDispute converts an API NewDispute model to a domain Dispute model.
func ToDomainNewDispute(newDispute *api.NewDispute, reporterID string) *models.Dispute {
	return &models.Dispute{
		TransactionId: newDispute.TransactionId,
		ReporterId:    reporterID,
		Reason:        newDispute.Reason,
		Evidence:      newDispute.Evidence,
	}
}

// ToApiWithdrawal converts a domain Withdrawal model to an API Withdrawal model.
func ToApiWithdrawal(withdrawal *models.Withdrawal) *api.Withdrawal {
	return &api.Withdrawal{
		Id:          withdrawal.Id,
		UserId:      withdrawal.UserId,
		Amount:      withdrawal.Amount,
		PayoutKey:   withdrawal.PayoutKey,
		Status:      string(withdrawal.Status),
		ProcessedAt: withdrawal.ProcessedAt,
		CreatedAt:   withdrawal.CreatedAt,
	}
}

// ToDomainNewWithdrawal converts an API NewWithdrawal model to a domain
// Withdrawal model.
func ToDomainNewWithdrawal(newWithdrawal *api.NewWithdrawal, userID string) *models.Withdrawal {
	return &models.Withdrawal{
		UserId:    userID,
		Amount:    newWithdrawal.Amount,
		PayoutKey: newWithdrawal.PayoutKey,
	}
}

// ToApiDeposit converts a domain Deposit model to an API Deposit model.
func ToApiDeposit(deposit *models.Deposit) *api.Deposit {
	return &api.Deposit{
		Id:        deposit.Id,
		UserId:    deposit.UserId,
		Amount:    deposit.Amount,
		Status:    string(deposit.Status),
		PaymentId: deposit.PaymentRef,
	}
}

// ToApiLedgerEntry converts a domain LedgerEntry model to an API LedgerEntry model.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	return &api.LedgerEntry{
		EntryId:       entry.EntryID,
		TransactionId: entry.TransactionID,
		AccountId:     entry.AccountID,
		Debit:         &entry.Debit,
		Credit:        &entry.Credit,
		Description:   entry.Description,
		Timestamp:     entry.Timestamp,
	}
}
