package pdf

import "testing"

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "Zero"},
		{1, "One"},
		{7, "Seven"},
		{10, "Ten"},
		{19, "Nineteen"},
		{20, "Twenty"},
		{21, "Twenty One"},
		{99, "Ninety Nine"},
		{100, "One Hundred"},
		{101, "One Hundred One"},
		{999, "Nine Hundred Ninety Nine"},
		{1000, "One Thousand"},
		{1500, "One Thousand Five Hundred"},
		{35989, "Thirty Five Thousand Nine Hundred Eighty Nine"},
		{100000, "One Lakh"},
		{250000, "Two Lakh Fifty Thousand"},
		{10000000, "One Crore"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
	}
	for _, tt := range tests {
		if got := AmountInWords(tt.in); got != tt.want {
			t.Errorf("AmountInWords(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
