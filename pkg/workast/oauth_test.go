package workast_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workast/workast-sdk-go/pkg/workast"
)

func TestOAuth2Config_endpoints(t *testing.T) {
	c, err := workast.New(testToken, workast.WithAuthBaseURL("https://auth.example.com/"))
	require.NoError(t, err)

	cfg := c.OAuth2Config("cid", "secret", "http://localhost/cb", "tasks")
	assert.Equal(t, "https://auth.example.com/oauth/authorize", cfg.Endpoint.AuthURL)
	assert.Equal(t, "https://auth.example.com/oauth/token", cfg.Endpoint.TokenURL)
	assert.Equal(t, []string{"tasks"}, cfg.Scopes)

	def := workast.OAuth2Config("", "cid", "secret", "")
	assert.Equal(t, "https://my.workast.io/oauth/token", def.Endpoint.TokenURL)
}

func TestExchangeCode(t *testing.T) {
	var gotCode, gotClient string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth/token" {
			http.NotFound(w, r)
			return
		}
		_ = r.ParseForm()
		gotCode = r.PostForm.Get("code")
		gotClient = r.PostForm.Get("client_id")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "wat::issued",
			"token_type":   "bearer",
		})
	}))
	defer srv.Close()

	cfg := workast.OAuth2Config(srv.URL, "cid", "secret", "http://localhost/cb")
	tok, err := workast.ExchangeCode(context.Background(), cfg, srv.Client(), "code-123")
	require.NoError(t, err)
	assert.Equal(t, "wat::issued", tok.AccessToken)
	assert.Equal(t, "code-123", gotCode)
	assert.Equal(t, "cid", gotClient)
}

func TestExchangeCode_emptyCode(t *testing.T) {
	cfg := workast.OAuth2Config("", "cid", "secret", "")
	_, err := workast.ExchangeCode(context.Background(), cfg, nil, "")
	assert.True(t, workast.IsInvalidParameter(err))
}
