package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupModelTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Mobile{}, &Invoice{}, &InvoiceItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestMobileProfit(t *testing.T) {
	sold := Mobile{
		Status:        MobileStatusSold,
		PurchasePrice: dec("10000"),
		SellingPrice:  decimal.NullDecimal{Decimal: dec("12500"), Valid: true},
	}
	p, ok := sold.Profit()
	if !ok {
		t.Fatal("expected profit to be defined for a sold unit")
	}
	if want := dec("2500"); !p.Equal(want) {
		t.Errorf("profit = %s, want %s", p, want)
	}

	// An available unit has no profit, even with a selling price set.
	available := Mobile{
		Status:        MobileStatusAvailable,
		PurchasePrice: dec("10000"),
		SellingPrice:  decimal.NullDecimal{Decimal: dec("12500"), Valid: true},
	}
	if _, ok := available.Profit(); ok {
		t.Error("expected profit to be undefined for an available unit")
	}

	// Sold without a recorded selling price: still undefined.
	noPrice := Mobile{Status: MobileStatusSold, PurchasePrice: dec("10000")}
	if _, ok := noPrice.Profit(); ok {
		t.Error("expected profit to be undefined without a selling price")
	}
}

func TestMobileSoldDateLifecycle(t *testing.T) {
	db := setupModelTestDB(t)

	mob := Mobile{Name: "Samsung", Model: "Galaxy M14", IMEINumber: "123456789012345", PurchasePrice: dec("10000"), Status: MobileStatusAvailable}
	if err := db.Create(&mob).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if mob.SoldDate != nil {
		t.Error("new stock should have no sold date")
	}
	if mob.StockInDate.IsZero() {
		t.Error("stock-in date should default to creation time")
	}

	mob.Status = MobileStatusSold
	mob.SellingPrice = decimal.NullDecimal{Decimal: dec("12500"), Valid: true}
	mob.CustomerName = "Ravi Kumar"
	mob.CustomerNumber = "9876543210"
	if err := db.Save(&mob).Error; err != nil {
		t.Fatalf("mark sold: %v", err)
	}
	if mob.SoldDate == nil {
		t.Fatal("selling should stamp the sold date")
	}

	// A pre-set sold date is preserved.
	fixed := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	mob.SoldDate = &fixed
	if err := db.Save(&mob).Error; err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mob.SoldDate.Equal(fixed) {
		t.Errorf("sold date overwritten: %v", mob.SoldDate)
	}

	// Returning to stock clears the sold date.
	mob.Status = MobileStatusAvailable
	if err := db.Save(&mob).Error; err != nil {
		t.Fatalf("return to stock: %v", err)
	}
	if mob.SoldDate != nil {
		t.Errorf("sold date should be cleared, got %v", mob.SoldDate)
	}
}

func TestInvoiceItemAmount(t *testing.T) {
	tests := []struct {
		name string
		item InvoiceItem
		want string
	}{
		{"normal", InvoiceItem{Quantity: 2, Rate: dec("8999.50")}, "17999.00"},
		{"zero quantity", InvoiceItem{Quantity: 0, Rate: dec("5000")}, "0"},
		{"zero rate", InvoiceItem{Quantity: 3}, "0"},
		{"empty row", InvoiceItem{}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Amount(); !got.Equal(dec(tt.want)) {
				t.Errorf("Amount() = %s, want %s", got, tt.want)
			}
		})
	}
}
