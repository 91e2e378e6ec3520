package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/web-security-repos/codeql-client/internal/config"
)

func TestCurrentVersions(t *testing.T) {
	v := currentVersions(nil)
	assert.Equal(t, config.DefaultBaseURL, v.APIBaseURL)
	assert.NotEqual(t, "unknown", v.GolangVersion)

	cfg := &config.Config{GitHub: config.GitHub{BaseURL: "http://localhost:8080"}}
	assert.Equal(t, "http://localhost:8080", currentVersions(cfg).APIBaseURL)
}

func TestPrintVersionInfo(t *testing.T) {
	v := Versions{Version: "1.2.3", GolangVersion: "go1.21", BuildTime: "now", APIBaseURL: "https://api.github.com"}

	var buf bytes.Buffer
	require.NoError(t, printVersionInfo(&buf, v, false))
	assert.Contains(t, buf.String(), "Core Version: v1.2.3\n")

	buf.Reset()
	require.NoError(t, printVersionInfo(&buf, v, true))
	var decoded Versions
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, v, decoded)
}
