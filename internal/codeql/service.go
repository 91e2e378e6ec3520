// Package codeql reads code scanning analyses, alerts, SARIF reports and
// organization repositories through the GitHub REST API.
package codeql

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/go-github/v47/github"
	"github.com/hashicorp/go-hclog"

	"github.com/web-security-repos/codeql-client/internal/githubapi"
	"github.com/web-security-repos/codeql-client/pkg/shared/files"
	"github.com/web-security-repos/codeql-client/pkg/shared/vcsurl"
)

// Service issues the code scanning requests. Calls are sequential; the
// service holds no state between them.
type Service struct {
	client *githubapi.Client
	logger hclog.Logger
}

func NewService(client *githubapi.Client, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{client: client, logger: logger}
}

// ListAnalyses returns the analyses of a repository together with the
// response they came from. A body that is not a JSON array is treated as an
// empty list.
func (s *Service) ListAnalyses(ctx context.Context, t vcsurl.Target) ([]*github.ScanningAnalysis, *githubapi.Response, error) {
	resp, err := s.client.Request(ctx, AnalysesPath(t), githubapi.MediaTypeJSON)
	if err != nil {
		return nil, nil, err
	}
	analyses, err := decodeList[*github.ScanningAnalysis](resp)
	return analyses, resp, err
}

// GetAnalysis returns the envelope of a single analysis so callers can
// render the whole document.
func (s *Service) GetAnalysis(ctx context.Context, t vcsurl.Target, id int64) (*githubapi.Response, error) {
	return s.client.Request(ctx, AnalysisPath(t, id), githubapi.MediaTypeJSON)
}

// GetAnalysisSARIF returns the SARIF document of an analysis as received.
func (s *Service) GetAnalysisSARIF(ctx context.Context, t vcsurl.Target, id int64) (string, *githubapi.Response, error) {
	resp, err := s.client.Request(ctx, AnalysisPath(t, id), githubapi.MediaTypeSARIF)
	if err != nil {
		return "", nil, err
	}
	return resp.Raw, resp, nil
}

// ListAlerts returns the code scanning alerts of a repository together with
// the response they came from.
func (s *Service) ListAlerts(ctx context.Context, t vcsurl.Target) ([]*Alert, *githubapi.Response, error) {
	resp, err := s.client.Request(ctx, AlertsPath(t), githubapi.MediaTypeJSON)
	if err != nil {
		return nil, nil, err
	}
	alerts, err := decodeList[*Alert](resp)
	return alerts, resp, err
}

// ListOrgRepositories pages through every repository of org. When a page
// fails, the repositories of the earlier pages are returned with the error.
func (s *Service) ListOrgRepositories(ctx context.Context, org string) ([]*github.Repository, error) {
	return githubapi.ListAll[*github.Repository](ctx, s.client, OrgReposPath(org), githubapi.DefaultPerPage,
		func(page int, repos []*github.Repository) {
			s.logger.Info("fetched page of repositories", "page", page, "count", len(repos))
		})
}

// SaveSARIF writes body verbatim to dir/sarif-report-{id}.json, replacing
// any existing file, and returns the path written.
func SaveSARIF(dir string, id int64, body string) (string, error) {
	if dir == "" {
		dir = "."
	}
	dir, err := files.ExpandPath(dir)
	if err != nil {
		return "", err
	}
	if err := files.CreateFolderIfNotExists(dir); err != nil {
		return "", err
	}

	path := filepath.Join(dir, SARIFReportName(id))
	if err := files.WriteFile(path, []byte(body)); err != nil {
		return "", fmt.Errorf("failed to save SARIF report %q: %w", path, err)
	}
	return path, nil
}

func decodeList[T any](resp *githubapi.Response) ([]T, error) {
	items := []T{}
	if !resp.IsList() {
		return items, nil
	}
	if err := resp.Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}
