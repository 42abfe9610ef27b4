package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{" 42 ", 42, true},
		{"10.0", 10, true},
		{"-5", 0, false},
		{"-0.5", 0, false},
		{"2.5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"\uFEFF7", 7, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseCount(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeCol(t *testing.T) {
	assert.Equal(t, "garda region", normalizeCol("  Garda Region "))
	assert.Equal(t, "statistic label", normalizeCol("\uFEFFStatistic Label"))
	assert.Equal(t, "value", normalizeCol("VALUE"))
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, '\t', detectDelimiter("a\tb\tc"))
	assert.Equal(t, ',', detectDelimiter("a,b,c"))
	// Mixed header: commas win unless tabs outnumber them.
	assert.Equal(t, ',', detectDelimiter("a,b\tc,d"))
	assert.Equal(t, ',', detectDelimiter("plain"))
}

func TestInScope(t *testing.T) {
	tokens := []string{"Dublin", "D.M.R."}
	assert.True(t, inScope("D.M.R. Northern Garda Division", tokens))
	assert.True(t, inScope("dublin metropolitan", tokens))
	assert.False(t, inScope("Kerry Garda Division", tokens))
	// Empty token list keeps everything.
	assert.True(t, inScope("Kerry Garda Division", nil))
}
