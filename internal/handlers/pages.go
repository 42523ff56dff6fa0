package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/prathibhasolutions/v-mobile/internal/models"
	"github.com/prathibhasolutions/v-mobile/internal/view"
)

// PagesHandler serves the public storefront pages.
type PagesHandler struct {
	DB *gorm.DB
}

func NewPagesHandler(db *gorm.DB) *PagesHandler {
	return &PagesHandler{DB: db}
}

func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	var mobiles []models.Mobile
	h.DB.Where("status = ?", models.MobileStatusAvailable).
		Order("stock_in_date desc").Limit(8).Find(&mobiles)
	_ = view.Render(w, r, "home.html", map[string]any{"Mobiles": mobiles})
}

func (h *PagesHandler) Phones(w http.ResponseWriter, r *http.Request) {
	var mobiles []models.Mobile
	h.DB.Where("status = ?", models.MobileStatusAvailable).
		Order("stock_in_date desc").Find(&mobiles)
	_ = view.Render(w, r, "phones.html", map[string]any{"Mobiles": mobiles})
}

func (h *PagesHandler) Services(w http.ResponseWriter, r *http.Request) {
	_ = view.Render(w, r, "services.html", nil)
}

func (h *PagesHandler) About(w http.ResponseWriter, r *http.Request) {
	_ = view.Render(w, r, "about.html", nil)
}

func (h *PagesHandler) Contact(w http.ResponseWriter, r *http.Request) {
	_ = view.Render(w, r, "contact.html", nil)
}
