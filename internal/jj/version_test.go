package jj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"jj 0.24.0", "0.24.0"},
		{"jj 0.15.1\n", "0.15.1"},
		{"jj 0.30.0-8a2b7c1d9e", "0.30.0-8a2b7c1d9e"},
	}
	for _, tt := range tests {
		v, err := ParseVersion(tt.output)
		require.NoError(t, err, tt.output)
		assert.Equal(t, tt.want, v.String())
	}

	_, err := ParseVersion("jj unknown")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}
