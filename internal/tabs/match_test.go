package tabs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		query string
		in    []Kind
		want  []Kind
	}{
		{"", All, All},
		{"pro", All, []Kind{Projects}},
		{"PRO", All, []Kind{Projects}},
		{"porj", All, []Kind{Projects}},
		{"intr", All, []Kind{Internships}},
		{"b", All, []Kind{Blog}},
		{"xy", All, []Kind{}},
		{"blog", []Kind{Internships, Projects}, []Kind{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			require.Equal(t, tt.want, Match(tt.query, tt.in))
		})
	}
}
