package utils

import "strings"

// MaskSecret masks a credential for safe logging, keeping only the first and
// last two characters. Example: "0a21ffd1..." -> "0a***96".
func MaskSecret(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:2] + "***" + secret[len(secret)-2:]
}
