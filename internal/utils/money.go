package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatINR renders a rupee amount with Indian digit grouping, e.g. 1,25,000.00.
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := int64(amount)
	paise := int64((amount-float64(whole))*100 + 0.5)
	if paise == 100 {
		whole++
		paise = 0
	}
	return fmt.Sprintf("%sRs. %s.%02d", sign, groupIndian(whole), paise)
}

// ParsePrice accepts "4999", "4,999.00" or "Rs. 4,999".
func ParsePrice(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "rs.")
	s = strings.TrimPrefix(s, "rs")
	s = strings.TrimPrefix(s, "₹")
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid price")
	}
	return strconv.ParseFloat(s, 64)
}

func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	head, tail := str[:len(str)-3], str[len(str)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
