package listrepos

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-github/v47/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateListReposArgs(t *testing.T) {
	assert.NoError(t, validateListReposArgs(&RunOptionsListRepos{}, nil))
	assert.NoError(t, validateListReposArgs(&RunOptionsListRepos{}, []string{"https://github.com/octo"}))
	assert.Error(t, validateListReposArgs(&RunOptionsListRepos{}, []string{"a", "b"}))
	assert.Error(t, validateListReposArgs(&RunOptionsListRepos{Organization: "octo"}, []string{"https://github.com/octo"}))
}

func TestResolveOrganization(t *testing.T) {
	org, err := resolveOrganization(&RunOptionsListRepos{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Web-Security-Repos", org)

	org, err = resolveOrganization(&RunOptionsListRepos{Organization: "octo"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "octo", org)

	org, err = resolveOrganization(&RunOptionsListRepos{}, []string{"https://github.com/octo-org/"})
	require.NoError(t, err)
	assert.Equal(t, "octo-org", org)
}

func TestSaveRepositories(t *testing.T) {
	dir := t.TempDir()

	path, err := saveRepositories(dir, []*github.Repository{{Name: github.String("test-a")}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, defaultOutputName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var repos []map[string]any
	require.NoError(t, json.Unmarshal(data, &repos))
	require.Len(t, repos, 1)
	assert.Equal(t, "test-a", repos[0]["name"])

	path, err = saveRepositories(filepath.Join(dir, "nested", "out.json"), nil)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
