package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/prathibhasolutions/v-mobile/internal/models"
)

var hundred = decimal.NewFromInt(100)

// InvoiceService holds invoice business logic: totals, the per-HSN tax
// summary, and invoice numbering. The calculation methods are pure; only
// creation touches the database.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// Totals carries every derived amount on an invoice. RoundOff is the
// exact delta taking the unrounded total to the nearest whole rupee, so
// Subtotal + CGSTAmount + SGSTAmount + RoundOff == GrandTotal always
// holds without drift.
type Totals struct {
	Subtotal   decimal.Decimal
	CGSTAmount decimal.Decimal
	SGSTAmount decimal.Decimal
	RoundOff   decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeTotals derives all invoice amounts from its items and tax rates.
// An invoice with no items yields all zeroes.
func (s *InvoiceService) ComputeTotals(inv *models.Invoice) Totals {
	subtotal := decimal.Zero
	for i := range inv.Items {
		subtotal = subtotal.Add(inv.Items[i].Amount())
	}
	cgst := subtotal.Mul(inv.CGSTRate).Div(hundred)
	sgst := subtotal.Mul(inv.SGSTRate).Div(hundred)
	unrounded := subtotal.Add(cgst).Add(sgst)
	grand := unrounded.Round(0)
	return Totals{
		Subtotal:   subtotal,
		CGSTAmount: cgst,
		SGSTAmount: sgst,
		RoundOff:   grand.Sub(unrounded),
		GrandTotal: grand,
	}
}

// TaxLine is one row of the HSN/SAC tax summary table.
type TaxLine struct {
	HSNCode      string
	TaxableValue decimal.Decimal
	CGSTAmount   decimal.Decimal
	SGSTAmount   decimal.Decimal
	TotalTax     decimal.Decimal
}

// TaxSummary groups item amounts by HSN/SAC code, in first-appearance
// order, and taxes each group at the invoice rates. The rows sum exactly
// to the invoice-level CGST and SGST totals.
func (s *InvoiceService) TaxSummary(inv *models.Invoice) []TaxLine {
	byCode := map[string]int{}
	var lines []TaxLine
	for i := range inv.Items {
		it := &inv.Items[i]
		idx, ok := byCode[it.HSNCode]
		if !ok {
			idx = len(lines)
			byCode[it.HSNCode] = idx
			lines = append(lines, TaxLine{HSNCode: it.HSNCode})
		}
		lines[idx].TaxableValue = lines[idx].TaxableValue.Add(it.Amount())
	}
	for i := range lines {
		lines[i].CGSTAmount = lines[i].TaxableValue.Mul(inv.CGSTRate).Div(hundred)
		lines[i].SGSTAmount = lines[i].TaxableValue.Mul(inv.SGSTRate).Div(hundred)
		lines[i].TotalTax = lines[i].CGSTAmount.Add(lines[i].SGSTAmount)
	}
	return lines
}

// NextInvoiceNumber computes the number for a new invoice dated in the
// given year: one past the highest sequence already used that year,
// formatted "<year>-<NNNN>". An unparsable prior number falls back to
// sequence 1 with a logged warning instead of failing the creation.
func NextInvoiceNumber(tx *gorm.DB, year int) (string, error) {
	seq := 1
	var last models.Invoice
	err := tx.Where("invoice_number LIKE ?", fmt.Sprintf("%d-%%", year)).
		Order("invoice_number desc").
		First(&last).Error
	switch {
	case err == nil:
		_, rest, found := strings.Cut(last.InvoiceNumber, "-")
		n, perr := strconv.Atoi(rest)
		if found && perr == nil {
			seq = n + 1
		} else {
			log.Printf("invoice numbering: cannot parse sequence from %q, falling back to 1", last.InvoiceNumber)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first invoice of the year
	default:
		return "", err
	}
	return fmt.Sprintf("%d-%04d", year, seq), nil
}

// Create numbers and persists a new invoice with its items in one
// transaction. The invoice number column is unique, so a concurrent
// creation that lands on the same sequence fails the insert; one retry
// recomputes the sequence against the committed state.
func (s *InvoiceService) Create(inv *models.Invoice) error {
	if inv.CGSTRate.IsZero() {
		inv.CGSTRate = decimal.NewFromInt(9)
	}
	if inv.SGSTRate.IsZero() {
		inv.SGSTRate = decimal.NewFromInt(9)
	}
	for i := range inv.Items {
		if inv.Items[i].HSNCode == "" {
			inv.Items[i].HSNCode = models.DefaultHSNCode
		}
	}
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			num, nerr := NextInvoiceNumber(tx, inv.InvoiceDate.Year())
			if nerr != nil {
				return nerr
			}
			inv.InvoiceNumber = num
			return tx.Create(inv).Error
		})
		if err == nil || !isDuplicateKey(err) {
			return err
		}
		log.Printf("invoice numbering: %s already taken, retrying", inv.InvoiceNumber)
	}
	return err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
