package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prathibhasolutions/v-mobile/internal/models"
	"github.com/prathibhasolutions/v-mobile/internal/services"
)

func TestMobileCreateValidatesIMEI(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewMobileHandler(db)

	body := `{"name":"Samsung","model":"Galaxy M14","imei_number":"123","purchase_price":"10000"}`
	req := httptest.NewRequest(http.MethodPost, "/mobiles", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestMobileStockIntakeAndList(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewMobileHandler(db)

	body := `{"name":"Samsung","model":"Galaxy M14","imei_number":"123456789012345","purchase_price":"10000"}`
	req := httptest.NewRequest(http.MethodPost, "/mobiles", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	listReq := httptest.NewRequest(http.MethodGet, "/mobiles?status=available", nil)
	listReq.Header.Set("Accept", "application/json")
	listW := httptest.NewRecorder()
	h.List(listW, listReq)
	if listW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", listW.Code)
	}
	var list struct {
		Items []json.RawMessage `json:"items"`
		Total int               `json:"total"`
	}
	if err := json.Unmarshal(listW.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 1 || len(list.Items) != 1 {
		t.Fatalf("unexpected list: %s", listW.Body.String())
	}
}

func TestMobileSellStampsSale(t *testing.T) {
	db := setupHandlerTestDB(t)
	mob := seedMobile(t, db, "123456789012345")
	h := NewMobileHandler(db)

	body := fmt.Sprintf(`{"id":%d,"selling_price":"12500","customer_name":"Ravi Kumar","customer_number":"9876543210"}`, mob.ID)
	req := httptest.NewRequest(http.MethodPost, "/mobiles/sell", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Sell(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Profit string `json:"profit"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Profit != "2,500.00" {
		t.Errorf("profit = %q, want 2,500.00", resp.Profit)
	}

	var stored models.Mobile
	if err := db.First(&stored, mob.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != models.MobileStatusSold {
		t.Errorf("status = %s, want sold", stored.Status)
	}
	if stored.SoldDate == nil {
		t.Error("sold date not stamped")
	}
	if stored.CustomerName != "Ravi Kumar" {
		t.Errorf("customer name = %q", stored.CustomerName)
	}
}

func TestMobileDeleteBlockedWhileInvoiced(t *testing.T) {
	db := setupHandlerTestDB(t)
	mob := seedMobile(t, db, "123456789012345")
	ih := NewInvoiceHandler(db, services.NewInvoiceService(db), testCompany())
	createInvoice(t, db, ih, mob.ID)
	h := NewMobileHandler(db)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/mobiles/delete?id=%d", mob.ID), nil)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Mobile{}).Where("id = ?", mob.ID).Count(&count)
	if count != 1 {
		t.Error("mobile should still exist after rejected delete")
	}
}

func TestMobileDeleteUnreferenced(t *testing.T) {
	db := setupHandlerTestDB(t)
	mob := seedMobile(t, db, "123456789012345")
	h := NewMobileHandler(db)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/mobiles/delete?id=%d", mob.ID), nil)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Mobile{}).Where("id = ?", mob.ID).Count(&count)
	if count != 0 {
		t.Error("mobile should be gone")
	}
}

func TestMobileSellNotFound(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewMobileHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/mobiles/sell", strings.NewReader(`{"id":42,"selling_price":"100"}`))
	w := httptest.NewRecorder()
	h.Sell(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
