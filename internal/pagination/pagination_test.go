package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	cases := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{name: "first page", current: 1, total: 10, want: []int{1, 2, 3, 4, 5}},
		{name: "last page", current: 10, total: 10, want: []int{6, 7, 8, 9, 10}},
		{name: "middle", current: 5, total: 10, want: []int{3, 4, 5, 6, 7}},
		{name: "fewer pages than window", current: 5, total: 5, want: []int{1, 2, 3, 4, 5}},
		{name: "two pages", current: 2, total: 2, want: []int{1, 2}},
		{name: "single page", current: 1, total: 1, want: []int{1}},
		{name: "no pages", current: 3, total: 0, want: []int{}},
		{name: "current past end", current: 14, total: 10, want: []int{6, 7, 8, 9, 10}},
		{name: "current below one", current: 0, total: 10, want: []int{1, 2, 3, 4, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Window(tc.current, tc.total, DefaultMaxVisible))
		})
	}
}

func TestWindowIsDeterministic(t *testing.T) {
	first := Window(4, 9, 5)
	second := Window(4, 9, 5)
	assert.Equal(t, first, second)
	assert.Equal(t, []int{2, 3, 4, 5, 6}, first)
}

func TestWindowNonPositiveMaxVisible(t *testing.T) {
	assert.Empty(t, Window(1, 10, 0))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(1, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestNew_SingleSearchResult(t *testing.T) {
	p := New(1, 12, 1)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, []int{1}, p.Window)
	assert.False(t, p.HasPrev)
	assert.False(t, p.HasNext)
}

func TestNew_EmptyResultDisablesNext(t *testing.T) {
	p := New(1, 12, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.Empty(t, p.Window)
	assert.False(t, p.HasNext)
}

func TestNew_MiddlePage(t *testing.T) {
	p := New(3, 12, 120)
	assert.Equal(t, 10, p.TotalPages)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, p.Window)
}

func TestNew_DefaultsPerPage(t *testing.T) {
	p := New(1, 0, 30)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, 3, p.TotalPages)
}
