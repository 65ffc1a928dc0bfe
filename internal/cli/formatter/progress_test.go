package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar_Counter(t *testing.T) {
	bar := NewProgressBar(20)

	tests := []struct {
		done, total int
		want        string
	}{
		{0, 10, "0/10"},
		{3, 10, "3/10"},
		{10, 10, "10/10"},
		{0, 0, "0/0"},
		{12, 10, "12/10"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Contains(t, bar.Render(tt.done, tt.total), tt.want)
		})
	}
}

func TestProgressBar_NotPercent(t *testing.T) {
	assert.NotContains(t, NewProgressBar(2).Render(1, 2), "%")
}
