package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/prathibhasolutions/v-mobile/internal/httpx"
	"github.com/prathibhasolutions/v-mobile/internal/models"
	"github.com/prathibhasolutions/v-mobile/internal/pdf"
	"github.com/prathibhasolutions/v-mobile/internal/view"
)

// MobileHandler serves stock management: intake, sale, and the admin list.
type MobileHandler struct {
	DB *gorm.DB
}

func NewMobileHandler(db *gorm.DB) *MobileHandler {
	return &MobileHandler{DB: db}
}

// List: GET /mobiles?status=available|sold – HTML or JSON, newest stock first.
func (h *MobileHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Order("stock_in_date desc")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	var mobiles []models.Mobile
	if err := q.Find(&mobiles).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_mobiles", nil)
		return
	}
	if httpx.WantsJSON(r) {
		items := make([]map[string]any, 0, len(mobiles))
		for i := range mobiles {
			entry := map[string]any{"mobile": mobiles[i]}
			if p, ok := mobiles[i].Profit(); ok {
				entry["profit"] = pdf.FormatAmount(p)
			}
			items = append(items, entry)
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(mobiles)})
		return
	}
	_ = view.Render(w, r, "mobiles.html", map[string]any{"Mobiles": mobiles})
}

type mobileCreateReq struct {
	Name          string              `json:"name"`
	Model         string              `json:"model"`
	IMEINumber    string              `json:"imei_number"`
	PurchasePrice decimal.Decimal     `json:"purchase_price"`
	SellingPrice  decimal.NullDecimal `json:"selling_price"`
}

// Create: POST /mobiles – stock intake.
func (h *MobileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req mobileCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	details := map[string]string{}
	if req.Name == "" {
		details["name"] = "required"
	}
	if req.Model == "" {
		details["model"] = "required"
	}
	if len(req.IMEINumber) != 15 {
		details["imei_number"] = "must be 15 characters"
	}
	if len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", details)
		return
	}
	mob := models.Mobile{
		Name:          req.Name,
		Model:         req.Model,
		IMEINumber:    req.IMEINumber,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		Status:        models.MobileStatusAvailable,
	}
	if err := h.DB.Create(&mob).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_mobile", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, mob)
}

type mobileSellReq struct {
	ID             uint            `json:"id"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	CustomerName   string          `json:"customer_name"`
	CustomerNumber string          `json:"customer_number"`
}

// Sell: POST /mobiles/sell – marks a unit sold, setting price, customer
// and sold date together.
func (h *MobileHandler) Sell(w http.ResponseWriter, r *http.Request) {
	var req mobileSellReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	mob, ok := h.loadMobile(w, req.ID)
	if !ok {
		return
	}
	now := time.Now()
	mob.Status = models.MobileStatusSold
	mob.SellingPrice = decimal.NullDecimal{Decimal: req.SellingPrice, Valid: true}
	mob.CustomerName = req.CustomerName
	mob.CustomerNumber = req.CustomerNumber
	mob.SoldDate = &now
	if err := h.DB.Save(mob).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_mobile", nil)
		return
	}
	resp := map[string]any{"mobile": mob}
	if p, ok := mob.Profit(); ok {
		resp["profit"] = pdf.FormatAmount(p)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Delete: POST /mobiles/delete?id=... – refused while the unit still
// appears on an invoice.
func (h *MobileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	mob, ok := h.loadMobile(w, uint(id))
	if !ok {
		return
	}
	var refs int64
	if err := h.DB.Model(&models.InvoiceItem{}).Where("mobile_id = ?", mob.ID).Count(&refs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_check_references", nil)
		return
	}
	if refs > 0 {
		httpx.JSONError(w, http.StatusConflict, "mobile_in_use", map[string]int64{"invoice_items": refs})
		return
	}
	if err := h.DB.Delete(mob).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_mobile", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *MobileHandler) loadMobile(w http.ResponseWriter, id uint) (*models.Mobile, bool) {
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return nil, false
	}
	var mob models.Mobile
	if err := h.DB.First(&mob, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		} else {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_mobile", nil)
		}
		return nil, false
	}
	return &mob, true
}
