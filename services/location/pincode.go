// File: services/location/pincode.go
package location

import "strings"

// pincodeLength is the length of an Indian postal code.
const pincodeLength = 6

// NormalizePincode strips non-digit characters and truncates the result to
// the postal code length.
func NormalizePincode(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == pincodeLength {
			break
		}
	}
	return b.String()
}

// IsCompletePincode reports whether a normalized pincode is ready to look up.
func IsCompletePincode(pincode string) bool {
	return len(pincode) == pincodeLength
}
