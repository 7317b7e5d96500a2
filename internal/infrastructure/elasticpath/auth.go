package elasticpath

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const tokenPath = "/oauth/access_token"

// newTokenSource returns a reusable client-credentials token source for the catalog
// identity endpoint. Tokens are refreshed when they expire.
func newTokenSource(baseURL, clientID, clientSecret string, timeout time.Duration) oauth2.TokenSource {
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + tokenPath,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	// The token source outlives any single request, so it gets its own HTTP client.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})
	return cfg.TokenSource(ctx)
}
