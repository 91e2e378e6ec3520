package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID int `json:"id"`
}

// pagedServer serves sizes[i] items on page i+1 and advertises rel="next"
// on every page but the last. Pages listed in failOn answer with 500.
func pagedServer(t *testing.T, sizes []int, failOn map[int]bool) (*Client, *int32) {
	t.Helper()
	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if failOn[page] {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"message":"Server Error"}`)
			return
		}
		if page < 1 || page > len(sizes) {
			fmt.Fprint(w, `[]`)
			return
		}

		offset := 0
		for _, n := range sizes[:page-1] {
			offset += n
		}
		items := make([]item, sizes[page-1])
		for i := range items {
			items[i] = item{ID: offset + i + 1}
		}

		if page < len(sizes) {
			w.Header().Set("Link", fmt.Sprintf(`<%s/orgs/o/repos?page=%d&per_page=100>; rel="next"`, "http://"+r.Host, page+1))
		}
		_ = json.NewEncoder(w).Encode(items)
	}))
	t.Cleanup(server.Close)

	return New(nil, "t", WithBaseURL(server.URL)), &requests
}

func TestListAllFollowsPages(t *testing.T) {
	client, requests := pagedServer(t, []int{100, 100, 37}, nil)

	items, err := ListAll[item](context.Background(), client, "/orgs/o/repos", DefaultPerPage, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(3), atomic.LoadInt32(requests))
	require.Len(t, items, 237)
	for i, it := range items {
		assert.Equal(t, i+1, it.ID)
	}
}

func TestListAllStopsOnEmptyPage(t *testing.T) {
	client, requests := pagedServer(t, []int{100, 0}, nil)

	items, err := ListAll[item](context.Background(), client, "/orgs/o/repos", DefaultPerPage, nil)
	require.NoError(t, err)

	assert.Len(t, items, 100)
	assert.Equal(t, int32(2), atomic.LoadInt32(requests))
}

func TestListAllPreservesPagesOnError(t *testing.T) {
	client, requests := pagedServer(t, []int{100, 100, 100, 100}, map[int]bool{3: true})

	items, err := ListAll[item](context.Background(), client, "/orgs/o/repos", DefaultPerPage, nil)
	require.Error(t, err)

	code, ok := StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, code)

	assert.Len(t, items, 200)
	assert.Equal(t, 200, items[len(items)-1].ID)
	assert.Equal(t, int32(3), atomic.LoadInt32(requests))
}

func TestListAllReportsEachPage(t *testing.T) {
	client, _ := pagedServer(t, []int{100, 100, 100}, map[int]bool{3: true})

	var pages, counts []int
	items, err := ListAll[item](context.Background(), client, "/orgs/o/repos", DefaultPerPage, func(page int, got []item) {
		pages = append(pages, page)
		counts = append(counts, len(got))
	})
	require.Error(t, err)
	assert.Len(t, items, 200)
	assert.Equal(t, []int{1, 2}, pages)
	assert.Equal(t, []int{100, 100}, counts)
}

func TestPageIteratorIsNotRestartable(t *testing.T) {
	client, requests := pagedServer(t, []int{5}, nil)
	it := client.Pages("/orgs/o/repos", 0)

	require.True(t, it.Next(context.Background()))
	assert.Equal(t, 1, it.PageNumber())
	assert.Len(t, it.Page(), 5)

	assert.False(t, it.Next(context.Background()))
	assert.False(t, it.Next(context.Background()))
	assert.NoError(t, it.Err())
	assert.Nil(t, it.Page())
	assert.Equal(t, int32(1), atomic.LoadInt32(requests))
}

func TestPageIteratorStopsOnNonArrayBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Link", `<http://x/?page=2>; rel="next"`)
		fmt.Fprint(w, `{"message":"not a list"}`)
	}))
	t.Cleanup(server.Close)

	it := New(nil, "t", WithBaseURL(server.URL)).Pages("/orgs/o/repos", 0)
	assert.False(t, it.Next(context.Background()))
	assert.NoError(t, it.Err())
}

func TestPagePath(t *testing.T) {
	assert.Equal(t, "/orgs/o/repos?page=1&per_page=100", PagePath("/orgs/o/repos", 1, 100))
	assert.Equal(t, "/orgs/o/repos?type=public&page=3&per_page=50", PagePath("/orgs/o/repos?type=public", 3, 50))
}
