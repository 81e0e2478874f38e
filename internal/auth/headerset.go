package auth

import "strings"

// authorizationHeader is the header the token is injected under. A colliding
// key in ad hoc header records overwrites it; the merge does not guard
// against that.
const authorizationHeader = "Authorization"

// HeaderSet holds the authorization metadata for the scenario: a single
// full header value such as "Bearer eyJ..." or "Basic dXNlcjo...".
// Steps replace it between calls; the executor only reads it.
type HeaderSet struct {
	Token string
}

// Headers returns the header mapping this set contributes to a request.
// An empty token yields an empty map, never a blank Authorization header.
func (h HeaderSet) Headers() map[string]string {
	if strings.TrimSpace(h.Token) == "" {
		return map[string]string{}
	}
	return map[string]string{authorizationHeader: h.Token}
}
