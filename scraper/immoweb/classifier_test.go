package immoweb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySale(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want string
	}{
		{
			name: "single flag",
			data: map[string]any{"flags": map[string]any{"isNotarySale": true}},
			want: "NotarySale",
		},
		{
			name: "first flag in priority order wins",
			data: map[string]any{"flags": map[string]any{
				"isNotarySale": true,
				"isPublicSale": true,
			}},
			want: "PublicSale",
		},
		{
			name: "lowest priority flag",
			data: map[string]any{"flags": map[string]any{"isNewRealEstateProject": true}},
			want: "NewRealEstateProject",
		},
		{
			name: "no flag true",
			data: map[string]any{"flags": map[string]any{
				"isPublicSale": false,
				"isNewlyBuilt": false,
			}},
			want: "",
		},
		{
			name: "flags key missing",
			data: map[string]any{"property": map[string]any{}},
			want: "",
		},
		{
			name: "nil data",
			data: nil,
			want: "",
		},
		{
			name: "truthy non-boolean flag does not count",
			data: map[string]any{"flags": map[string]any{"isPublicSale": "true"}},
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifySale(tc.data))
		})
	}
}
