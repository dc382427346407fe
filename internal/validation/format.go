package validation

import "strings"

// Digits strips everything but ASCII digits from value.
func Digits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatDate progressively formats typed digits as MM/DD/YYYY.
func FormatDate(value string) string {
	d := Digits(value)
	switch {
	case len(d) >= 6:
		return d[:2] + "/" + d[2:4] + "/" + d[4:min(len(d), 8)]
	case len(d) >= 4:
		return d[:2] + "/" + d[2:4]
	case len(d) >= 2:
		return d[:2] + "/" + d[2:]
	default:
		return d
	}
}

// FormatZip keeps at most the first five digits.
func FormatZip(value string) string {
	d := Digits(value)
	return d[:min(len(d), 5)]
}

// FormatPhone formats typed digits as ###-###-####.
func FormatPhone(value string) string {
	d := Digits(value)
	switch {
	case len(d) >= 6:
		return d[:3] + "-" + d[3:6] + "-" + d[6:min(len(d), 10)]
	case len(d) >= 3:
		return d[:3] + "-" + d[3:]
	default:
		return d
	}
}
