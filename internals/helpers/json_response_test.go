package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPaginationFromPage(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       int
		perPage    int
		wantPages  int
		wantHasNxt bool
		wantHasPrv bool
	}{
		{"first of many", 45, 1, 20, 3, true, false},
		{"middle page", 45, 2, 20, 3, true, true},
		{"last page", 45, 3, 20, 3, false, true},
		{"empty result still one page", 0, 1, 20, 1, false, false},
		{"exact multiple", 40, 2, 20, 2, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPaginationFromPage(tt.total, tt.page, tt.perPage)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantHasNxt, p.HasNext)
			assert.Equal(t, tt.wantHasPrv, p.HasPrev)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}
