package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadString(t *testing.T) {
	tests := []struct {
		in    string
		width int
		align string
		want  string
	}{
		{"ab", 4, AlignLeft, "ab  "},
		{"ab", 4, "", "ab  "},
		{"ab", 4, AlignRight, "  ab"},
		{"ab", 5, AlignCenter, " ab  "},
		{"abcdef", 3, AlignLeft, "abcdef"},
		{"日本", 6, AlignLeft, "日本  "},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, padString(tt.in, tt.width, tt.align), "%q/%d/%s", tt.in, tt.width, tt.align)
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "Hash", Width: 16},
		{Header: "Name"},
		{Header: "Images", Align: AlignRight},
	})
	table.AddRow([]string{"0123456789abcdef", "Alice", "2"})
	table.AddRow([]string{"fedcba9876543210", "Zoë Ångström", "30"})
	table.AddRow([]string{"aaaaaaaaaaaaaaaa"})

	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	require.Len(t, lines, 5)

	// every line renders to the same cell width
	width := lipgloss.Width(lines[0])
	for _, line := range lines[1:] {
		assert.Equal(t, width, lipgloss.Width(line), line)
	}
	assert.Contains(t, lines[3], "Zoë Ångström")
}

func TestTableRender_NoColumns(t *testing.T) {
	assert.Empty(t, NewTable(nil).Render())
}
