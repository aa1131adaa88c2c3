package ledger

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Scopes requested from the identity endpoint. Tokens are valid for roughly
// 30 minutes; the token source refreshes them transparently.
var Scopes = []string{"accounting.transactions", "accounting.journals.read"}

// NewTokenSource returns a client-credentials token source for the ledger
// identity endpoint. A failed exchange surfaces on the first request and is
// fatal for the run; there is no retry.
func NewTokenSource(ctx context.Context, tokenURL, clientID, clientSecret string) oauth2.TokenSource {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       Scopes,
	}
	return cfg.TokenSource(ctx)
}
