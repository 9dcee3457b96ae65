package utils

import "strings"

// usernameMinLength matches the users table constraint.
const usernameMinLength = 3

// DeriveUsername turns a provider display name into a username candidate:
// lowercased with all whitespace stripped. Names too short to be valid are
// padded with "user" so the candidate always satisfies the length rule.
func DeriveUsername(displayName string) string {
	candidate := strings.ToLower(strings.Join(strings.Fields(displayName), ""))
	if len(candidate) < usernameMinLength {
		candidate = "user" + candidate
	}
	return candidate
}
