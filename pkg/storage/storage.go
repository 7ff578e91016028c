package storage

// ApiStore defines the complete set of non-privileged operations needed by the
// API service. It composes the granular interfaces to give handlers a clear
// data-access boundary.
type ApiStore interface {
	ListingStore
	TransactionStore
	WalletStore
	DisputeStore
	WithdrawalStore
	DepositStore
	LedgerReader
}

// Storage defines the root interface for the entire data layer.
// It composes all available storage operations. Components should depend on
// the more granular interfaces (ApiStore, ReleaseStore, etc.) instead of this
// one.
type Storage interface {
	ApiStore
	ReleaseStore
}
