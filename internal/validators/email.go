package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the domain part of an email address can
// plausibly receive mail: an MX record, or failing that a resolvable host.
// Catches typo domains at registration before a confirmation bounces.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	host := email[at+1:]
	if !strings.Contains(host, ".") {
		return false
	}

	if mx, err := net.LookupMX(host); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(host)
	return err == nil && len(ips) > 0
}
