package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MobileStatus represents the stock status of a handset.
type MobileStatus string

const (
	MobileStatusAvailable MobileStatus = "available"
	MobileStatusSold      MobileStatus = "sold"
)

// Mobile is one physical handset tracked from purchase to sale.
type Mobile struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"` // brand name, e.g. "Samsung"
	Model string `gorm:"size:100;not null" json:"model"`
	// IMEINumber uniquely identifies the handset (15 digits).
	IMEINumber    string              `gorm:"size:15;uniqueIndex;not null" json:"imei_number"`
	PurchasePrice decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"purchase_price"`
	SellingPrice  decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"selling_price"`

	Status      MobileStatus `gorm:"size:10;not null;default:'available'" json:"status"`
	StockInDate time.Time    `gorm:"not null" json:"stock_in_date"`

	// Customer details, filled in when the unit is sold.
	CustomerName   string     `gorm:"size:100" json:"customer_name,omitempty"`
	CustomerNumber string     `gorm:"size:15" json:"customer_number,omitempty"`
	SoldDate       *time.Time `json:"sold_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave keeps SoldDate consistent with Status: stamping it on a sale
// and clearing it when the unit returns to stock.
func (m *Mobile) BeforeSave(tx *gorm.DB) error {
	if m.StockInDate.IsZero() {
		m.StockInDate = time.Now()
	}
	switch m.Status {
	case MobileStatusSold:
		if m.SoldDate == nil {
			now := time.Now()
			m.SoldDate = &now
		}
	case MobileStatusAvailable:
		m.SoldDate = nil
	}
	return nil
}

// Profit returns selling price minus purchase price. It is defined only
// for sold units with a selling price recorded; ok is false otherwise
// (an unsold unit has no profit, not a zero profit).
func (m *Mobile) Profit() (decimal.Decimal, bool) {
	if m.Status != MobileStatusSold || !m.SellingPrice.Valid {
		return decimal.Decimal{}, false
	}
	return m.SellingPrice.Decimal.Sub(m.PurchasePrice), true
}
