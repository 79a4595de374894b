package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadlessSetting(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		envValue bool
		expected bool
	}{
		{
			name:     "Explicit true beats env false",
			args:     []string{"-headless=true"},
			envValue: false,
			expected: true,
		},
		{
			name:     "Explicit false beats env true",
			args:     []string{"-headless=false"},
			envValue: true,
			expected: false,
		},
		{
			name:     "Unset flag defers to env",
			args:     []string{},
			envValue: false,
			expected: false,
		},
		{
			name:     "Unset flag defers to env true",
			args:     []string{},
			envValue: true,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("scrape", flag.ContinueOnError)
			headless := fs.Bool("headless", true, "")
			require.NoError(t, fs.Parse(tt.args))

			assert.Equal(t, tt.expected, headlessSetting(fs, *headless, tt.envValue))
		})
	}
}
