// Package pdf renders tax invoices as printable A4 documents. It exposes
// a plain data-in/bytes-out API so callers never touch the underlying
// layout library.
package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// Party is one side of the invoice: the shop or the buyer.
type Party struct {
	Name      string
	Address   string
	GSTIN     string
	State     string
	StateCode string
}

// LineItem is one row of the goods table.
type LineItem struct {
	Description string
	HSNCode     string
	Quantity    int
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// TaxRow is one row of the HSN/SAC tax summary.
type TaxRow struct {
	HSNCode      string
	TaxableValue decimal.Decimal
	CGSTAmount   decimal.Decimal
	SGSTAmount   decimal.Decimal
	TotalTax     decimal.Decimal
}

// InvoiceData is everything the renderer needs. All amounts arrive
// precomputed; the renderer does layout only.
type InvoiceData struct {
	InvoiceNumber    string
	InvoiceDate      time.Time
	DeliveryNote     string
	DeliveryNoteDate string

	Seller Party
	Buyer  Party

	Items    []LineItem
	CGSTRate decimal.Decimal
	SGSTRate decimal.Decimal

	Subtotal   decimal.Decimal
	CGSTAmount decimal.Decimal
	SGSTAmount decimal.Decimal
	RoundOff   decimal.Decimal
	GrandTotal decimal.Decimal

	TaxSummary []TaxRow
}

var grey = props.Color{Red: 120, Green: 120, Blue: 120}

func boxed() *props.Cell {
	return &props.Cell{BorderType: border.Full}
}

func cellText(size int, value string, ps props.Text) core.Col {
	if ps.Size == 0 {
		ps.Size = 8
	}
	ps.Top = 1
	return col.New(size).Add(text.New(value, ps)).WithStyle(boxed())
}

// RenderInvoice lays out a GST tax invoice and returns the PDF bytes.
// The same input always produces the same document.
func RenderInvoice(data InvoiceData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithRightMargin(10).
		WithTopMargin(10).
		Build()
	m := maroto.New(cfg)

	m.AddRow(10, text.NewCol(12, "Tax Invoice",
		props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Center}))

	addHeaderBlock(m, data)
	addBuyerBlock(m, data.Buyer)
	addItemsTable(m, data)
	addAmountInWords(m, data.GrandTotal)
	addTaxSummary(m, data)
	addDeclaration(m, data.Seller.Name)

	m.AddRow(8, text.NewCol(12, "This is a Computer Generated Invoice",
		props.Text{Size: 7, Align: align.Center, Color: &grey, Top: 3}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// Seller details beside invoice metadata and the customary reference
// placeholders, three bordered columns.
func addHeaderBlock(m core.Maroto, data InvoiceData) {
	sellerLines := []string{
		data.Seller.Name,
		data.Seller.Address,
		"GSTIN/UIN: " + data.Seller.GSTIN,
		fmt.Sprintf("State Name - %s, Code : %s", data.Seller.State, data.Seller.StateCode),
	}
	seller := col.New(5)
	seller.Add(text.New(sellerLines[0], props.Text{Size: 8, Style: fontstyle.Bold, Top: 1}))
	for i, line := range sellerLines[1:] {
		seller.Add(text.New(line, props.Text{Size: 8, Top: 6 + float64(i)*5}))
	}
	seller.WithStyle(boxed())

	meta := col.New(4)
	metaPairs := [][2]string{
		{"Invoice No.", data.InvoiceNumber},
		{"Dated", data.InvoiceDate.Format("02-01-2006")},
		{"Delivery Note", data.DeliveryNote},
		{"Delivery Note Date", data.DeliveryNoteDate},
		{"Mode/Terms of Payment", ""},
	}
	top := 1.0
	for _, p := range metaPairs {
		meta.Add(text.New(p[0], props.Text{Size: 8, Style: fontstyle.Bold, Top: top}))
		meta.Add(text.New(p[1], props.Text{Size: 8, Top: top + 4}))
		top += 9
	}
	meta.WithStyle(boxed())

	refs := col.New(3)
	refLabels := []string{"Supplier's Ref.", "Other Reference(s)", "Buyer's Order No.", "Dispatch Document No."}
	top = 1.0
	for _, l := range refLabels {
		refs.Add(text.New(l, props.Text{Size: 8, Style: fontstyle.Bold, Top: top}))
		top += 9
	}
	refs.WithStyle(boxed())

	m.AddRows(row.New(48).Add(seller, meta, refs))
}

func addBuyerBlock(m core.Maroto, buyer Party) {
	m.AddRows(row.New(6).Add(cellText(12, "Buyer", props.Text{Style: fontstyle.Bold})))
	m.AddRows(
		row.New(5).Add(
			cellText(4, "Name:", props.Text{}),
			cellText(8, buyer.Name, props.Text{Style: fontstyle.Bold}),
		),
		row.New(5).Add(
			cellText(4, "Address:", props.Text{}),
			cellText(8, buyer.Address, props.Text{}),
		),
		row.New(5).Add(
			cellText(4, "GSTIN/UIN:", props.Text{}),
			cellText(8, buyer.GSTIN, props.Text{Style: fontstyle.Bold}),
		),
		row.New(5).Add(
			cellText(12, fmt.Sprintf("State Name : %s, Code : %s", buyer.State, buyer.StateCode), props.Text{}),
		),
	)
	m.AddRow(3, col.New(12))
}

// Column sizes for the goods table (out of maroto's 12 grid units):
// S.No 1, description 4, HSN 2, qty 2, rate 1, per 1, amount 1.
func itemRow(sno, desc, hsn, qty, rate, per, amount string, descStyle fontstyle.Type) core.Row {
	return row.New(6).Add(
		cellText(1, sno, props.Text{Align: align.Center}),
		cellText(4, desc, props.Text{Style: descStyle}),
		cellText(2, hsn, props.Text{Align: align.Center}),
		cellText(2, qty, props.Text{Align: align.Center}),
		cellText(1, rate, props.Text{Align: align.Right}),
		cellText(1, per, props.Text{Align: align.Center}),
		cellText(1, amount, props.Text{Align: align.Right}),
	)
}

func addItemsTable(m core.Maroto, data InvoiceData) {
	m.AddRows(row.New(6).Add(
		cellText(1, "S.No", props.Text{Style: fontstyle.Bold, Align: align.Center}),
		cellText(4, "Description of Goods", props.Text{Style: fontstyle.Bold}),
		cellText(2, "HSN/SAC", props.Text{Style: fontstyle.Bold, Align: align.Center}),
		cellText(2, "Quantity", props.Text{Style: fontstyle.Bold, Align: align.Center}),
		cellText(1, "Rate", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		cellText(1, "per", props.Text{Style: fontstyle.Bold, Align: align.Center}),
		cellText(1, "Amount", props.Text{Style: fontstyle.Bold, Align: align.Right}),
	))

	qtyTotal := 0
	for i, it := range data.Items {
		qtyTotal += it.Quantity
		m.AddRows(itemRow(
			fmt.Sprintf("%d", i+1),
			it.Description,
			it.HSNCode,
			fmt.Sprintf("%d no", it.Quantity),
			FormatAmount(it.Rate),
			"nos",
			FormatAmount(it.Amount),
			fontstyle.Bold,
		))
	}

	m.AddRows(
		itemRow("", "CGST", "", "", formatRate(data.CGSTRate), "", FormatAmount(data.CGSTAmount), fontstyle.Italic),
		itemRow("", "SGST", "", "", formatRate(data.SGSTRate), "", FormatAmount(data.SGSTAmount), fontstyle.Italic),
		itemRow("", "Round off", "", "", "", "", FormatAmount(data.RoundOff), fontstyle.Italic),
	)
	m.AddRows(row.New(6).Add(
		cellText(1, "", props.Text{}),
		cellText(4, "Total", props.Text{Style: fontstyle.Bold}),
		cellText(2, "", props.Text{}),
		cellText(2, fmt.Sprintf("%d no", qtyTotal), props.Text{Style: fontstyle.Bold, Align: align.Center}),
		cellText(1, "", props.Text{}),
		cellText(1, "", props.Text{}),
		cellText(1, FormatAmount(data.GrandTotal), props.Text{Style: fontstyle.Bold, Align: align.Right}),
	))
	m.AddRow(3, col.New(12))
}

func addAmountInWords(m core.Maroto, grandTotal decimal.Decimal) {
	words := AmountInWords(grandTotal.IntPart())
	m.AddRows(
		row.New(5).Add(cellText(12, "Amount Chargeable (in words)", props.Text{Style: fontstyle.Bold})),
		row.New(6).Add(cellText(12, "INR "+words+" Only",
			props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center})),
	)
	m.AddRow(3, col.New(12))
}

func addTaxSummary(m core.Maroto, data InvoiceData) {
	header := []string{"HSN/SAC", "Taxable Value", "Central Tax Rate", "Central Tax Amount", "State Tax Rate", "State Tax Amount", "Total Tax Amount"}
	hdr := row.New(8)
	sizes := []int{2, 2, 1, 2, 1, 2, 2}
	for i, h := range header {
		hdr.Add(col.New(sizes[i]).
			Add(text.New(h, props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Top: 1})).
			WithStyle(boxed()))
	}
	m.AddRows(hdr)

	taxRow := func(code, taxable, cgstRate, cgstAmt, sgstRate, sgstAmt, total string, style fontstyle.Type) core.Row {
		vals := []string{code, taxable, cgstRate, cgstAmt, sgstRate, sgstAmt, total}
		r := row.New(6)
		for i, v := range vals {
			r.Add(col.New(sizes[i]).
				Add(text.New(v, props.Text{Size: 7, Style: style, Align: align.Center, Top: 1})).
				WithStyle(boxed()))
		}
		return r
	}

	for _, t := range data.TaxSummary {
		m.AddRows(taxRow(
			t.HSNCode,
			t.TaxableValue.StringFixed(2),
			formatRate(data.CGSTRate),
			t.CGSTAmount.StringFixed(2),
			formatRate(data.SGSTRate),
			t.SGSTAmount.StringFixed(2),
			t.TotalTax.StringFixed(2),
			fontstyle.Normal,
		))
	}
	m.AddRows(taxRow(
		"Total",
		data.Subtotal.StringFixed(2),
		"",
		data.CGSTAmount.StringFixed(2),
		"",
		data.SGSTAmount.StringFixed(2),
		data.CGSTAmount.Add(data.SGSTAmount).StringFixed(2),
		fontstyle.Bold,
	))
	m.AddRow(3, col.New(12))
}

func addDeclaration(m core.Maroto, companyName string) {
	decl := col.New(7)
	decl.Add(
		text.New("Declaration:", props.Text{Size: 8, Style: fontstyle.Bold, Top: 1}),
		text.New("We declare that this invoice shows the actual price of the goods described and that all particulars are true and correct.",
			props.Text{Size: 8, Top: 6}),
	)
	decl.WithStyle(boxed())

	sign := col.New(5)
	sign.Add(
		text.New("for "+companyName, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Top: 1}),
		text.New("Authorised Signatory", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Top: 16}),
	)
	sign.WithStyle(boxed())

	m.AddRows(row.New(24).Add(decl, sign))
}

func formatRate(rate decimal.Decimal) string {
	// Decimal.String trims trailing zeros, so a 9.00 rate prints as "9%".
	return rate.String() + "%"
}

// FormatAmount renders a money value with thousands separators,
// e.g. 1234567.5 -> "1,234,567.50".
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
