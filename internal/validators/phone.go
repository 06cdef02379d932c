package validators

// IsValidPhone accepts Philippine mobile numbers in the local
// format: "09" followed by nine digits.
func IsValidPhone(phone string) bool {
	if len(phone) != 11 {
		return false
	}
	if phone[0] != '0' || phone[1] != '9' {
		return false
	}
	for _, r := range phone[2:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
