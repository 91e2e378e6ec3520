package codeql

import (
	"github.com/google/go-github/v47/github"
)

// Alert is a code scanning alert as returned by the alerts endpoint.
// Optional members are pointers; the Get* accessors are nil-safe and return
// zero values, which callers render with their own defaults.
type Alert struct {
	Number             *int                       `json:"number,omitempty"`
	State              *string                    `json:"state,omitempty"`
	Rule               *github.Rule               `json:"rule,omitempty"`
	Tool               *github.Tool               `json:"tool,omitempty"`
	CreatedAt          *github.Timestamp          `json:"created_at,omitempty"`
	HTMLURL            *string                    `json:"html_url,omitempty"`
	MostRecentInstance *github.MostRecentInstance `json:"most_recent_instance,omitempty"`
}

func (a *Alert) GetNumber() int {
	if a == nil || a.Number == nil {
		return 0
	}
	return *a.Number
}

func (a *Alert) GetState() string {
	if a == nil || a.State == nil {
		return ""
	}
	return *a.State
}

func (a *Alert) GetRule() *github.Rule {
	if a == nil {
		return nil
	}
	return a.Rule
}

func (a *Alert) GetTool() *github.Tool {
	if a == nil {
		return nil
	}
	return a.Tool
}

func (a *Alert) GetCreatedAt() github.Timestamp {
	if a == nil || a.CreatedAt == nil {
		return github.Timestamp{}
	}
	return *a.CreatedAt
}

func (a *Alert) GetHTMLURL() string {
	if a == nil || a.HTMLURL == nil {
		return ""
	}
	return *a.HTMLURL
}

func (a *Alert) GetMostRecentInstance() *github.MostRecentInstance {
	if a == nil {
		return nil
	}
	return a.MostRecentInstance
}
