package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeEscaperMatchesLiterally(t *testing.T) {
	cases := []struct {
		term string
		want string
	}{
		{"Ana", "Ana"},
		{"100%", `100\%`},
		{"EST_001", `EST\_001`},
		{`a\b`, `a\\b`},
		{"%_", `\%\_`},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, likeEscaper.Replace(tc.term), tc.term)
	}
}
