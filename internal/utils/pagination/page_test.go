package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		want       Page
		wantOffset int
	}{
		{"defaults", 0, 0, Page{Page: 1, Limit: 50}, 0},
		{"negative values", -3, -1, Page{Page: 1, Limit: 50}, 0},
		{"third page", 3, 20, Page{Page: 3, Limit: 20}, 40},
		{"limit capped", 1, 5000, Page{Page: 1, Limit: MaxLimit}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPage(tt.page, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOffset, got.Offset())
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 50))
	assert.Equal(t, 1, TotalPages(1, 50))
	assert.Equal(t, 1, TotalPages(50, 50))
	assert.Equal(t, 2, TotalPages(51, 50))
	assert.Equal(t, 0, TotalPages(10, 0))
}
