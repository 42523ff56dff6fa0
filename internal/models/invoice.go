package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultHSNCode is the HSN classification for mobile handsets.
const DefaultHSNCode = "85171300"

// Invoice is one GST tax invoice. Seller and buyer details are stored as
// a snapshot so later edits to the shop profile never change an issued
// document.
type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// InvoiceNumber is "<year>-<4 digit sequence>"; the sequence restarts
	// each calendar year.
	InvoiceNumber string    `gorm:"size:20;uniqueIndex;not null" json:"invoice_number"`
	InvoiceDate   time.Time `gorm:"not null" json:"invoice_date"`

	BuyerName      string `gorm:"size:200;not null" json:"buyer_name"`
	BuyerAddress   string `gorm:"type:text" json:"buyer_address"`
	BuyerGSTIN     string `gorm:"size:15" json:"buyer_gstin"`
	BuyerState     string `gorm:"size:50" json:"buyer_state"`
	BuyerStateCode string `gorm:"size:2" json:"buyer_state_code"`

	CompanyName      string `gorm:"size:200;not null" json:"company_name"`
	CompanyAddress   string `gorm:"type:text" json:"company_address"`
	CompanyGSTIN     string `gorm:"size:15" json:"company_gstin"`
	CompanyState     string `gorm:"size:50" json:"company_state"`
	CompanyStateCode string `gorm:"size:2" json:"company_state_code"`

	CGSTRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"cgst_rate"`
	SGSTRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"sgst_rate"`

	DeliveryNote     string     `gorm:"size:200" json:"delivery_note,omitempty"`
	DeliveryNoteDate *time.Time `json:"delivery_note_date,omitempty"`
	IsDraft          bool       `gorm:"not null;default:false" json:"is_draft"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceItem is one line of an invoice, referencing a handset in stock.
// Deleting a Mobile that still appears on an invoice is blocked.
type InvoiceItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`

	MobileID uint   `gorm:"index;not null" json:"mobile_id"`
	Mobile   Mobile `gorm:"foreignKey:MobileID;constraint:OnDelete:RESTRICT" json:"mobile,omitempty"`

	HSNCode  string          `gorm:"size:20;not null;default:'85171300'" json:"hsn_code"`
	Quantity int             `gorm:"not null;default:0" json:"quantity"`
	Rate     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Amount is quantity times rate, computed on read and never stored.
// Incomplete rows (zero or missing quantity/rate) count as zero.
func (it *InvoiceItem) Amount() decimal.Decimal {
	if it.Quantity <= 0 {
		return decimal.Zero
	}
	return it.Rate.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
