package server

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/prathibhasolutions/v-mobile/internal/config"
	"github.com/prathibhasolutions/v-mobile/internal/handlers"
	"github.com/prathibhasolutions/v-mobile/internal/httpx"
	"github.com/prathibhasolutions/v-mobile/internal/services"
)

// New constructs the root http.Handler with all routes applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Invoice endpoints
	invSvc := services.NewInvoiceService(db)
	ih := handlers.NewInvoiceHandler(db, invSvc, cfg.Company)
	mux.HandleFunc("/invoices", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ih.List(w, r)
		case http.MethodPost:
			ih.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/invoices/items", requirePost(ih.UpdateItems))
	mux.HandleFunc("/invoices/pdf", ih.PDF)
	mux.HandleFunc("/invoices/view", ih.View)

	// Stock endpoints
	mh := handlers.NewMobileHandler(db)
	mux.HandleFunc("/mobiles", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			mh.List(w, r)
		case http.MethodPost:
			mh.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/mobiles/sell", requirePost(mh.Sell))
	mux.HandleFunc("/mobiles/delete", requirePost(mh.Delete))

	// Public pages
	ph := handlers.NewPagesHandler(db)
	mux.HandleFunc("/", ph.Home)
	mux.HandleFunc("/phones", ph.Phones)
	mux.HandleFunc("/services", ph.Services)
	mux.HandleFunc("/about", ph.About)
	mux.HandleFunc("/contact", ph.Contact)

	return mux
}

func requirePost(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		next(w, r)
	}
}
