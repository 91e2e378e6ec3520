package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultPerPage is the page size requested from collection endpoints.
const DefaultPerPage = 100

// PageIterator walks a paginated collection one page at a time.
//
// It starts on page 1 and keeps fetching while the previous page was a
// non-empty array and its Link header carried rel="next". An empty page, a
// non-array body or an error ends the walk. The iterator is lazy and cannot
// be restarted.
type PageIterator struct {
	client  *Client
	path    string
	perPage int

	page  int
	items []json.RawMessage
	more  bool
	done  bool
	err   error
}

// Pages returns an iterator over path. perPage <= 0 uses DefaultPerPage.
func (c *Client) Pages(path string, perPage int) *PageIterator {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &PageIterator{
		client:  c,
		path:    path,
		perPage: perPage,
	}
}

// Next fetches the next page and reports whether one is available.
func (it *PageIterator) Next(ctx context.Context) bool {
	if it.done {
		return false
	}
	if it.page > 0 && !it.more {
		return it.finish(nil)
	}

	it.page++
	resp, err := it.client.Request(ctx, PagePath(it.path, it.page, it.perPage), MediaTypeJSON)
	if err != nil {
		return it.finish(err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(resp.Raw), &items); err != nil || len(items) == 0 {
		return it.finish(nil)
	}

	it.items = items
	it.more = resp.HasNextPage()
	return true
}

func (it *PageIterator) finish(err error) bool {
	it.done = true
	it.items = nil
	it.err = err
	return false
}

// Page returns the items of the current page.
func (it *PageIterator) Page() []json.RawMessage {
	return it.items
}

// PageNumber returns the number of the page last requested.
func (it *PageIterator) PageNumber() int {
	return it.page
}

// Err returns the error that stopped the iteration, if any.
func (it *PageIterator) Err() error {
	return it.err
}

// PagePath appends page and per_page query parameters to path.
func PagePath(path string, page, perPage int) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spage=%d&per_page=%d", path, sep, page, perPage)
}

// PageFunc is called after each page has been decoded.
type PageFunc[T any] func(page int, items []T)

// ListAll concatenates every page of path decoded as T, in order, calling
// onPage, when not nil, after each page. When a page fails the items
// gathered so far are returned with the error.
func ListAll[T any](ctx context.Context, c *Client, path string, perPage int, onPage PageFunc[T]) ([]T, error) {
	all := []T{}
	it := c.Pages(path, perPage)
	for it.Next(ctx) {
		page := make([]T, 0, len(it.Page()))
		for _, raw := range it.Page() {
			var item T
			if err := json.Unmarshal(raw, &item); err != nil {
				return all, fmt.Errorf("failed to decode page %d: %w", it.PageNumber(), err)
			}
			page = append(page, item)
		}
		all = append(all, page...)
		if onPage != nil {
			onPage(it.PageNumber(), page)
		}
	}
	if err := it.Err(); err != nil {
		return all, fmt.Errorf("error fetching page %d: %w", it.PageNumber(), err)
	}
	return all, nil
}
