package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"zero", Params{}, false},
		{"offset mode", Params{Limit: 10, Offset: 5}, false},
		{"page mode", Params{Page: 2, PageSize: 10}, false},
		{"negative", Params{Limit: -1}, true},
		{"limit too big", Params{Limit: MaxLimit + 1}, true},
		{"mixed modes", Params{Page: 1, PageSize: 5, Offset: 3}, true},
		{"page-size alone", Params{PageSize: 5}, true},
		{"page alone", Params{Page: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestApply(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	got, meta := Apply(items, Params{})
	assert.Equal(t, items, got)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)

	got, meta = Apply(items, Params{Limit: 3, Offset: 3})
	assert.Equal(t, []int{3, 4, 5}, got)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNext)

	got, meta = Apply(items, Params{Page: 4, PageSize: 3})
	assert.Equal(t, []int{9}, got)
	assert.False(t, meta.HasNext)

	got, _ = Apply(items, Params{Offset: 50})
	assert.Empty(t, got)

	got, meta = Apply([]int{}, Params{})
	assert.Empty(t, got)
	assert.Equal(t, 0, meta.TotalPages)
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		expr      string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{"", "", SortOrderAsc, nil},
		{"name", "name", SortOrderAsc, nil},
		{"Growth:DESC", "growth", SortOrderDesc, nil},
		{" code : asc ", "code", SortOrderAsc, nil},
		{"a:b:c", "", "", ErrInvalidSortFormat},
		{":desc", "", "", ErrEmptySortField},
		{"name:up", "", "", ErrInvalidSortOrder},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			field, order, err := ParseSort(tt.expr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestValidateField(t *testing.T) {
	valid := []string{"name", "code"}
	require.NoError(t, ValidateField("", valid))
	require.NoError(t, ValidateField("code", valid))
	require.ErrorIs(t, ValidateField("size", valid), ErrInvalidSortField)
}
