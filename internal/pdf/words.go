package pdf

import "strings"

var (
	ones  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

func belowThousand(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		s := tens[n/10]
		if n%10 != 0 {
			s += " " + ones[n%10]
		}
		return s
	default:
		s := ones[n/100] + " Hundred"
		if n%100 != 0 {
			s += " " + belowThousand(n%100)
		}
		return s
	}
}

// AmountInWords spells out a whole rupee amount in the Indian numbering
// system (crore, lakh, thousand) for the amount-chargeable line.
func AmountInWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	crores := n / 10000000
	n %= 10000000
	lakhs := n / 100000
	n %= 100000
	thousands := n / 1000
	n %= 1000

	var words string
	if crores > 0 {
		words += belowThousand(crores) + " Crore "
	}
	if lakhs > 0 {
		words += belowThousand(lakhs) + " Lakh "
	}
	if thousands > 0 {
		words += belowThousand(thousands) + " Thousand "
	}
	if n > 0 {
		words += belowThousand(n)
	}
	return strings.TrimSpace(words)
}
