package provider

import "strings"

// SplitToken splits a composite OrderKuota token of the form
// "{accountID}:{secret}". The accountID half addresses the path-scoped
// mutation endpoint; the secret half authenticates the request.
func SplitToken(token string) (accountID, secret string, err error) {
	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return "", "", ErrInvalidTokenFormat
	}
	return parts[0], parts[1], nil
}
