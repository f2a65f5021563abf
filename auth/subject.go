// Package auth holds the identity side of the app: parsing verified
// subject claims, verifying bearer tokens against the identity provider's
// JWKS, carrying the resolved session through a request context, and the
// authorization decision for the follow mutation.
package auth

import (
	"strings"

	"wtfSpaces/errs"
)

// ProviderTwitter is the only identity provider currently accepted.
const ProviderTwitter = "twitter"

// supportedProviders is a closed allow-list. Unknown providers are
// rejected even if their subject claim parses cleanly; extending support
// means adding an entry here, not removing a check.
var supportedProviders = map[string]bool{
	ProviderTwitter: true,
}

// ParseSubject splits a verified subject claim of the form
// "<provider>|<providerId>" into its halves. It fails with EINVALID if the
// claim is empty, malformed, or names a provider we do not support.
func ParseSubject(subject string) (provider, providerID string, err error) {
	if subject == "" {
		return "", "", errs.Errorf(errs.EINVALID, "Subject claim is missing.")
	}
	provider, providerID, found := strings.Cut(subject, "|")
	if !found || provider == "" || providerID == "" {
		return "", "", errs.Errorf(errs.EINVALID, "Subject claim is malformed.")
	}
	if !supportedProviders[provider] {
		return "", "", errs.Errorf(errs.EINVALID, "Identity provider %q is not supported.", provider)
	}
	return provider, providerID, nil
}
