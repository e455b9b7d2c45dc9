package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		limit      string
		want       Page
		wantOffset int
	}{
		{name: "defaults", want: Page{Number: 1, Limit: 10}, wantOffset: 0},
		{name: "second page of five", page: "2", limit: "5", want: Page{Number: 2, Limit: 5}, wantOffset: 5},
		{name: "zero page", page: "0", limit: "10", want: Page{Number: 1, Limit: 10}, wantOffset: 0},
		{name: "negative limit", page: "3", limit: "-4", want: Page{Number: 3, Limit: 10}, wantOffset: 20},
		{name: "garbage", page: "abc", limit: "1e3", want: Page{Number: 1, Limit: 10}, wantOffset: 0},
		{name: "limit capped", page: "1", limit: "5000", want: Page{Number: 1, Limit: 100}, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPage(tt.page, tt.limit, 100)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOffset, got.Offset())
		})
	}
}

func TestNewPage_NoCap(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Limit: 500}, NewPage("", "500", 0))
}
