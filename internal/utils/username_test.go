package utils_test

import (
	"testing"

	"github.com/corkboard/bulletin_board_app/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestDeriveUsername(t *testing.T) {
	tests := []struct {
		displayName string
		want        string
	}{
		{"Alice", "alice"},
		{"John Smith", "johnsmith"},
		{"  Spaced   Out  Name ", "spacedoutname"},
		{"MixedCASE", "mixedcase"},
		{"Jo", "userjo"},
		{"", "user"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, utils.DeriveUsername(tt.displayName), "displayName=%q", tt.displayName)
	}
}
