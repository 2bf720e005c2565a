package meter

import "fmt"

// formatTime renders a duration-in-seconds count as MM:SS, or HH:MM:SS
// once it reaches an hour: 45 -> "00:45", 43200 -> "12:00:00".
func formatTime(seconds uint64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

var siSuffixes = [...]string{"", "k", "M", "G", "T", "P", "E", "Z", "Y"}

// formatSizeof renders x in 3-4 significant-digit SI-scaled form:
// 10 -> "10.0", 1234 -> "1.23k", 12345 -> "12.3k", 1234000 -> "1.23M",
// 999000000 -> "999M", 999999000 -> "1.00G".
func formatSizeof(x uint64) string {
	f := float64(x)
	i := 0
	for f >= 999.5 && i < len(siSuffixes)-1 {
		f /= 1000
		i++
	}

	var digits string
	switch {
	case f < 9.995:
		digits = fmt.Sprintf("%.2f", f)
	case f < 99.95:
		digits = fmt.Sprintf("%.1f", f)
	default:
		digits = fmt.Sprintf("%.0f", f)
	}
	return digits + siSuffixes[i]
}
