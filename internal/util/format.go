package util

import "fmt"

// FormatRupiah renders an int64 amount as "Rp 1.234.567".
func FormatRupiah(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	if amount < 0 {
		s = s[1:]
	}
	out := ""
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out += "."
		}
		out += string(c)
	}
	if amount < 0 {
		out = "-" + out
	}
	return "Rp " + out
}
