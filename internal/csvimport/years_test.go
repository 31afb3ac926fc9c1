package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLifespan(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		birth *int
		death *int
	}{
		{"full lifespan", "1859 - 1883", intPtr(1859), intPtr(1883)},
		{"parenthesized", "(1905 - 1977)", intPtr(1905), intPtr(1977)},
		{"no spaces", "1843-1907", intPtr(1843), intPtr(1907)},
		{"birth only", "1859 -", intPtr(1859), nil},
		{"birth only trailing space", "1859 - ", intPtr(1859), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := ExtractLifespan(tt.text)
			require.NotNil(t, ls)
			assert.Equal(t, tt.birth, ls.BirthYear)
			assert.Equal(t, tt.death, ls.DeathYear)
		})
	}
}

func TestExtractLifespanNoMatch(t *testing.T) {
	assert.Nil(t, ExtractLifespan(""))
	assert.Nil(t, ExtractLifespan("   "))
	assert.Nil(t, ExtractLifespan("ukjent"))
	assert.Nil(t, ExtractLifespan("f. 1859"))
}

func TestExtractYear(t *testing.T) {
	assert.Equal(t, intPtr(1905), ExtractYear("ca. 1905"))
	assert.Equal(t, intPtr(1898), ExtractYear("komponert 1898, utgitt senere"))
	assert.Equal(t, intPtr(1890), ExtractYear("1890-1891"))
	assert.Nil(t, ExtractYear(""))
	assert.Nil(t, ExtractYear("ukjent"))
	assert.Nil(t, ExtractYear("190"))
}

func intPtr(v int) *int { return &v }
