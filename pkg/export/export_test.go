package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCSV(t *testing.T) {
	out, err := RenderCSV(Table{
		Summary: []string{"visits: 12"},
		Columns: []string{"time", "user", "type"},
		Rows: [][]string{
			{"2026-08-30 10:00", "student-a", "visit"},
			{"2026-08-30 10:05", "student-b", "download"},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "visits: 12", lines[0])
	assert.Equal(t, "time,user,type", lines[1])
	assert.Contains(t, lines[2], "student-a")
}

func TestRenderCSVRequiresColumns(t *testing.T) {
	_, err := RenderCSV(Table{})
	assert.Error(t, err)
}

func TestRenderCSVPadsShortRows(t *testing.T) {
	out, err := RenderCSV(Table{
		Columns: []string{"a", "b", "c"},
		Rows:    [][]string{{"only"}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "only,,")
}

func TestRenderPDF(t *testing.T) {
	out, err := RenderPDF(Table{
		Title:   "Usage Report",
		Summary: []string{"visits: 3"},
		Columns: []string{"time", "type"},
		Rows:    [][]string{{"2026-08-30", "visit"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderPDFRequiresColumns(t *testing.T) {
	_, err := RenderPDF(Table{})
	assert.Error(t, err)
}
