package vcsurl

import (
	"fmt"
	"net/url"
	"strings"

	gitsight "github.com/gitsight/go-vcsurl"
)

// Target identifies a GitHub repository by owner and name.
type Target struct {
	Namespace  string
	Repository string
}

func (t Target) String() string {
	return t.Namespace + "/" + t.Repository
}

// ParseTarget accepts "owner/repo" or a GitHub repository URL (https or ssh).
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("empty repository reference")
	}

	if !isURL(raw) {
		dirs := GetPathDirs(raw)
		if len(dirs) != 2 {
			return Target{}, fmt.Errorf("repository reference %q must be in the form owner/repo", raw)
		}
		return Target{Namespace: dirs[0], Repository: dirs[1]}, nil
	}

	info, err := gitsight.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("failed to parse repository URL %q: %w", raw, err)
	}
	if info.Host != gitsight.GitHub {
		return Target{}, fmt.Errorf("repository URL %q does not point to github.com", raw)
	}
	if info.Username == "" || info.Name == "" {
		return Target{}, fmt.Errorf("repository URL %q has no owner or name", raw)
	}
	return Target{Namespace: info.Username, Repository: info.Name}, nil
}

// ParseOrganization accepts an organization name or its GitHub URL.
func ParseOrganization(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty organization")
	}
	if !isURL(raw) {
		if strings.Contains(raw, "/") {
			return "", fmt.Errorf("organization %q must not contain '/'", raw)
		}
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse organization URL %q: %w", raw, err)
	}
	dirs := GetPathDirs(u.Path)
	if len(dirs) == 0 {
		return "", fmt.Errorf("organization URL %q has no path", raw)
	}
	return dirs[0], nil
}

// GetPathDirs splits a path into non-empty segments.
func GetPathDirs(path string) []string {
	var pathDirs []string
	for _, dir := range strings.Split(path, "/") {
		if dir != "" {
			pathDirs = append(pathDirs, dir)
		}
	}
	return pathDirs
}

func isURL(raw string) bool {
	return strings.Contains(raw, "://") || strings.HasPrefix(raw, "git@")
}
