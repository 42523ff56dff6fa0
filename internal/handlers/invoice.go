package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/prathibhasolutions/v-mobile/internal/config"
	"github.com/prathibhasolutions/v-mobile/internal/httpx"
	"github.com/prathibhasolutions/v-mobile/internal/models"
	"github.com/prathibhasolutions/v-mobile/internal/pdf"
	"github.com/prathibhasolutions/v-mobile/internal/services"
	"github.com/prathibhasolutions/v-mobile/internal/view"
)

// InvoiceHandler serves invoice CRUD and PDF generation.
type InvoiceHandler struct {
	DB      *gorm.DB
	Svc     *services.InvoiceService
	Company config.Company
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService, company config.Company) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc, Company: company}
}

type invoiceItemReq struct {
	MobileID uint            `json:"mobile_id"`
	Quantity int             `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	HSNCode  string          `json:"hsn_code"`
}

type invoiceCreateReq struct {
	InvoiceDate    string           `json:"invoice_date"`
	BuyerName      string           `json:"buyer_name"`
	BuyerAddress   string           `json:"buyer_address"`
	BuyerGSTIN     string           `json:"buyer_gstin"`
	BuyerState     string           `json:"buyer_state"`
	BuyerStateCode string           `json:"buyer_state_code"`
	CGSTRate       decimal.Decimal  `json:"cgst_rate"`
	SGSTRate       decimal.Decimal  `json:"sgst_rate"`
	DeliveryNote   string           `json:"delivery_note"`
	IsDraft        bool             `json:"is_draft"`
	Items          []invoiceItemReq `json:"items"`
}

// totalsPayload is the formatted view of computed amounts returned to
// admin screens alongside the raw invoice.
func totalsPayload(t services.Totals) map[string]string {
	return map[string]string{
		"subtotal":    pdf.FormatAmount(t.Subtotal),
		"cgst_amount": pdf.FormatAmount(t.CGSTAmount),
		"sgst_amount": pdf.FormatAmount(t.SGSTAmount),
		"round_off":   pdf.FormatAmount(t.RoundOff),
		"grand_total": pdf.FormatAmount(t.GrandTotal),
	}
}

// List: GET /invoices – HTML or JSON
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var invs []models.Invoice
	if err := h.DB.Preload("Items.Mobile").Order("id desc").Find(&invs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": invs, "total": len(invs)})
		return
	}
	_ = view.Render(w, r, "invoices.html", map[string]any{"Invoices": invs})
}

// Create: POST /invoices – numbered at creation, never renumbered on edit.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req invoiceCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.BuyerName == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"buyer_name": "required"})
		return
	}
	invoiceDate := time.Now()
	if req.InvoiceDate != "" {
		d, err := time.Parse("2006-01-02", req.InvoiceDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"invoice_date": "expected YYYY-MM-DD"})
			return
		}
		invoiceDate = d
	}
	items := make([]models.InvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.MobileID == 0 {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": "mobile_id required"})
			return
		}
		var mob models.Mobile
		if err := h.DB.First(&mob, it.MobileID).Error; err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_mobile", map[string]any{"mobile_id": it.MobileID})
			return
		}
		items = append(items, models.InvoiceItem{
			MobileID: it.MobileID,
			Quantity: it.Quantity,
			Rate:     it.Rate,
			HSNCode:  it.HSNCode,
		})
	}

	inv := models.Invoice{
		InvoiceDate:      invoiceDate,
		BuyerName:        req.BuyerName,
		BuyerAddress:     req.BuyerAddress,
		BuyerGSTIN:       req.BuyerGSTIN,
		BuyerState:       req.BuyerState,
		BuyerStateCode:   req.BuyerStateCode,
		CompanyName:      h.Company.Name,
		CompanyAddress:   h.Company.Address,
		CompanyGSTIN:     h.Company.GSTIN,
		CompanyState:     h.Company.State,
		CompanyStateCode: h.Company.StateCode,
		CGSTRate:         req.CGSTRate,
		SGSTRate:         req.SGSTRate,
		DeliveryNote:     req.DeliveryNote,
		IsDraft:          req.IsDraft,
		Items:            items,
	}
	if err := h.Svc.Create(&inv); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	if err := h.DB.Preload("Items.Mobile").First(&inv, inv.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"id":             inv.ID,
		"invoice_number": inv.InvoiceNumber,
		"totals":         totalsPayload(h.Svc.ComputeTotals(&inv)),
	})
}

// UpdateItems: POST /invoices/items?id=... – replaces the invoice's line
// items; the PDF is regenerated from current rows so edits show up
// immediately.
func (h *InvoiceHandler) UpdateItems(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.loadInvoice(w, r)
	if !ok {
		return
	}
	var req struct {
		Items []invoiceItemReq `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	items := make([]models.InvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.MobileID == 0 {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": "mobile_id required"})
			return
		}
		hsn := it.HSNCode
		if hsn == "" {
			hsn = models.DefaultHSNCode
		}
		items = append(items, models.InvoiceItem{
			InvoiceID: inv.ID,
			MobileID:  it.MobileID,
			Quantity:  it.Quantity,
			Rate:      it.Rate,
			HSNCode:   hsn,
		})
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_items", nil)
		return
	}
	if err := h.DB.Preload("Items.Mobile").First(inv, inv.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"id":     inv.ID,
		"totals": totalsPayload(h.Svc.ComputeTotals(inv)),
	})
}

// PDF: GET /invoices/pdf?id=... – download as attachment.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	h.servePDF(w, r, "attachment")
}

// View: GET /invoices/view?id=... – render inline in the browser.
func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	h.servePDF(w, r, "inline")
}

func (h *InvoiceHandler) servePDF(w http.ResponseWriter, r *http.Request, disposition string) {
	inv, ok := h.loadInvoice(w, r)
	if !ok {
		return
	}
	data, err := pdf.RenderInvoice(h.buildInvoiceData(inv))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, "Invoice_"+inv.InvoiceNumber+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *InvoiceHandler) loadInvoice(w http.ResponseWriter, r *http.Request) (*models.Invoice, bool) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return nil, false
	}
	var inv models.Invoice
	if err := h.DB.Preload("Items.Mobile").First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		} else {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		}
		return nil, false
	}
	return &inv, true
}

// buildInvoiceData flattens the invoice and its computed amounts into the
// renderer's input. The renderer never sees gorm models.
func (h *InvoiceHandler) buildInvoiceData(inv *models.Invoice) pdf.InvoiceData {
	totals := h.Svc.ComputeTotals(inv)
	summary := h.Svc.TaxSummary(inv)

	items := make([]pdf.LineItem, 0, len(inv.Items))
	for i := range inv.Items {
		it := &inv.Items[i]
		items = append(items, pdf.LineItem{
			Description: it.Mobile.Name + " " + it.Mobile.Model,
			HSNCode:     it.HSNCode,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      it.Amount(),
		})
	}
	taxRows := make([]pdf.TaxRow, 0, len(summary))
	for _, line := range summary {
		taxRows = append(taxRows, pdf.TaxRow{
			HSNCode:      line.HSNCode,
			TaxableValue: line.TaxableValue,
			CGSTAmount:   line.CGSTAmount,
			SGSTAmount:   line.SGSTAmount,
			TotalTax:     line.TotalTax,
		})
	}
	deliveryDate := ""
	if inv.DeliveryNoteDate != nil {
		deliveryDate = inv.DeliveryNoteDate.Format("02-01-2006")
	}
	return pdf.InvoiceData{
		InvoiceNumber:    inv.InvoiceNumber,
		InvoiceDate:      inv.InvoiceDate,
		DeliveryNote:     inv.DeliveryNote,
		DeliveryNoteDate: deliveryDate,
		Seller: pdf.Party{
			Name:      inv.CompanyName,
			Address:   inv.CompanyAddress,
			GSTIN:     inv.CompanyGSTIN,
			State:     inv.CompanyState,
			StateCode: inv.CompanyStateCode,
		},
		Buyer: pdf.Party{
			Name:      inv.BuyerName,
			Address:   inv.BuyerAddress,
			GSTIN:     inv.BuyerGSTIN,
			State:     inv.BuyerState,
			StateCode: inv.BuyerStateCode,
		},
		Items:      items,
		CGSTRate:   inv.CGSTRate,
		SGSTRate:   inv.SGSTRate,
		Subtotal:   totals.Subtotal,
		CGSTAmount: totals.CGSTAmount,
		SGSTAmount: totals.SGSTAmount,
		RoundOff:   totals.RoundOff,
		GrandTotal: totals.GrandTotal,
		TaxSummary: taxRows,
	}
}
