package httpclient

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/web-security-repos/codeql-client/internal/config"
)

func TestApplyHTTPClientConfig(t *testing.T) {
	verify := false
	debug := true
	httpConfig := &config.HTTPClient{
		Debug:           &debug,
		Timeout:         5 * time.Second,
		TLSClientConfig: config.TLSClientConfig{Verify: &verify},
		Proxy:           config.Proxy{Host: "http://proxy.local", Port: 8080},
	}

	cfg := applyHTTPClientConfig(httpConfig)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.TLSClientConfig.InsecureSkipVerify)
	assert.Equal(t, "http://proxy.local:8080", cfg.Proxy)
}

func TestApplyHTTPClientConfigDefaults(t *testing.T) {
	cfg := applyHTTPClientConfig(&config.HTTPClient{})

	assert.False(t, cfg.Debug)
	assert.Zero(t, cfg.Timeout)
	assert.False(t, cfg.TLSClientConfig.InsecureSkipVerify)
	assert.Empty(t, cfg.Proxy)
}

func TestNew(t *testing.T) {
	client, err := New(hclog.NewNullLogger(), &config.Config{})
	require.NoError(t, err)
	require.NotNil(t, client.RestyClient)
	assert.Equal(t, 0, client.RestyClient.RetryCount)

	_, err = New(hclog.NewNullLogger(), nil)
	assert.Error(t, err)
}

func TestNewDoesNotFollowRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/moved" {
			fmt.Fprint(w, `[]`)
			return
		}
		http.Redirect(w, r, "/moved", http.StatusMovedPermanently)
	}))
	t.Cleanup(server.Close)

	client, err := New(hclog.NewNullLogger(), &config.Config{})
	require.NoError(t, err)

	resp, err := client.RestyClient.R().Get(server.URL + "/repos/old/name")
	require.NoError(t, err)
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode())
	assert.Equal(t, "/moved", resp.Header().Get("Location"))
}
