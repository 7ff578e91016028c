// Package handlers assembles the HTTP surface of the settlement engine: it
// wires the sub-handlers onto a chi router behind the shared middleware chain.
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tradehub/escrow-settlement/pkg/events"
	"github.com/tradehub/escrow-settlement/pkg/handlers/deposits"
	"github.com/tradehub/escrow-settlement/pkg/handlers/disputes"
	"github.com/tradehub/escrow-settlement/pkg/handlers/ledger"
	"github.com/tradehub/escrow-settlement/pkg/handlers/listings"
	"github.com/tradehub/escrow-settlement/pkg/handlers/releases"
	"github.com/tradehub/escrow-settlement/pkg/handlers/transactions"
	"github.com/tradehub/escrow-settlement/pkg/handlers/wallets"
	"github.com/tradehub/escrow-settlement/pkg/handlers/webhooks"
	"github.com/tradehub/escrow-settlement/pkg/handlers/withdrawals"
	"github.com/tradehub/escrow-settlement/pkg/middleware"
	"github.com/tradehub/escrow-settlement/pkg/payments"
	"github.com/tradehub/escrow-settlement/pkg/ratelimit"
	"github.com/tradehub/escrow-settlement/pkg/scheduler"
	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// Deps carries everything the HTTP surface needs. Limiter, Scheduler and
// Publisher are optional; a nil Publisher is replaced with a no-op.
type Deps struct {
	Store     storage.Storage
	Gateway   payments.Gateway
	Scheduler scheduler.Scheduler
	Publisher events.Publisher
	Limiter   ratelimit.Limiter
	Logger    *slog.Logger
}

// NewRouter builds the full API router. The payment webhook sits outside the
// actor requirement because the gateway authenticates via the payment
// reference, not a user header.
func NewRouter(d Deps) http.Handler {
	if d.Publisher == nil {
		d.Publisher = &events.NoOpPublisher{}
	}

	listingsHandler := listings.NewListingsHandler(d.Store)
	transactionsHandler := transactions.NewTransactionsHandler(d.Store, d.Gateway, d.Scheduler, d.Publisher, d.Logger)
	disputesHandler := disputes.NewDisputesHandler(d.Store, d.Publisher, d.Logger)
	walletsHandler := wallets.NewWalletsHandler(d.Store)
	withdrawalsHandler := withdrawals.NewWithdrawalsHandler(d.Store, d.Publisher, d.Logger)
	depositsHandler := deposits.NewDepositsHandler(d.Store, d.Gateway, d.Logger)
	ledgerHandler := ledger.NewLedgerHandler(d.Store)
	webhooksHandler := webhooks.NewWebhooksHandler(d.Store, d.Gateway, d.Publisher, d.Logger)
	releasesHandler := releases.NewReleasesHandler(d.Store, d.Store, d.Publisher, d.Logger)

	r := chi.NewRouter()
	r.Use(middleware.NewStructuredLogger(d.Logger))
	r.Use(chimiddleware.Recoverer)
	if d.Limiter != nil {
		r.Use(middleware.RateLimit(d.Limiter, d.Logger))
	}

	r.Post("/webhooks/payments", webhooksHandler.HandlePaymentNotification)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor)
		admin := adminOnly(d.Store)

		r.Route("/listings", func(r chi.Router) {
			r.Post("/", listingsHandler.CreateListing)
			r.Get("/{listingId}", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "listingId")
				if !ok {
					return
				}
				listingsHandler.GetListingById(w, r, id.String())
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", transactionsHandler.PlaceOrder)
			r.Get("/", transactionsHandler.ListTransactions)
			r.Get("/{transactionId}", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "transactionId")
				if !ok {
					return
				}
				transactionsHandler.GetTransactionById(w, r, id.String())
			})
			r.Post("/{transactionId}/confirm", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "transactionId")
				if !ok {
					return
				}
				transactionsHandler.ConfirmTransactionById(w, r, id.String())
			})
			r.Post("/{transactionId}/cancel", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "transactionId")
				if !ok {
					return
				}
				transactionsHandler.CancelTransactionById(w, r, id.String())
			})
		})

		r.Route("/disputes", func(r chi.Router) {
			r.Post("/", disputesHandler.OpenDispute)
			r.Get("/{disputeId}", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "disputeId")
				if !ok {
					return
				}
				disputesHandler.GetDisputeById(w, r, id.String())
			})
			r.With(admin).Get("/", disputesHandler.ListOpenDisputes)
			r.With(admin).Post("/{disputeId}/resolve", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "disputeId")
				if !ok {
					return
				}
				disputesHandler.ResolveDisputeById(w, r, id.String())
			})
		})

		r.Route("/wallets", func(r chi.Router) {
			r.Post("/", walletsHandler.CreateWallet)
			r.With(admin).Get("/", walletsHandler.ListWallets)
			r.Get("/{userId}", func(w http.ResponseWriter, r *http.Request) {
				walletsHandler.GetWalletByUserId(w, r, chi.URLParam(r, "userId"))
			})
		})

		r.Route("/withdrawals", func(r chi.Router) {
			r.Post("/", withdrawalsHandler.RequestWithdrawal)
			r.Get("/{withdrawalId}", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "withdrawalId")
				if !ok {
					return
				}
				withdrawalsHandler.GetWithdrawalById(w, r, id.String())
			})
			r.With(admin).Get("/", withdrawalsHandler.ListPendingWithdrawals)
			r.With(admin).Post("/{withdrawalId}/approve", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "withdrawalId")
				if !ok {
					return
				}
				withdrawalsHandler.ApproveWithdrawalById(w, r, id.String())
			})
			r.With(admin).Post("/{withdrawalId}/reject", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "withdrawalId")
				if !ok {
					return
				}
				withdrawalsHandler.RejectWithdrawalById(w, r, id.String())
			})
		})

		r.Route("/deposits", func(r chi.Router) {
			r.Post("/", depositsHandler.CreateDeposit)
			r.Get("/{depositId}", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "depositId")
				if !ok {
					return
				}
				depositsHandler.GetDepositById(w, r, id.String())
			})
		})

		r.With(admin).Get("/ledger", ledgerHandler.ListLedgerEntries)

		r.Post("/sellers/{sellerId}/release", func(w http.ResponseWriter, r *http.Request) {
			releasesHandler.ReleaseFunds(w, r, chi.URLParam(r, "sellerId"))
		})
	})

	return r
}

// uuidParam binds a UUID path parameter, writing a 400 response when the
// value is not a well-formed UUID. Resource IDs are always UUIDs; rejecting
// garbage here keeps malformed IDs out of the storage layer.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter %s: %s", name, err), http.StatusBadRequest)
		return openapi_types.UUID{}, false
	}
	return id, true
}

// adminOnly gates a route on the acting user's wallet carrying admin rights.
func adminOnly(store storage.WalletStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wallet, err := store.GetWallet(r.Context(), middleware.ActorID(r))
			if err != nil || !wallet.IsAdmin {
				http.Error(w, "Admin privileges required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
