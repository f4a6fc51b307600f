package history

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	store "briefly/internal/app/history"
	"briefly/internal/app/testutil"
)

func TestPrintEntries(t *testing.T) {
	entries := []store.Entry{
		{ID: "b", DistillationResult: *testutil.SampleCallResult()},
		{ID: "a", DistillationResult: *testutil.SampleChatResult()},
	}

	var table bytes.Buffer
	require.NoError(t, printEntries(&table, entries, false))
	lines := strings.Split(strings.TrimSpace(table.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "TIME"))
	assert.Contains(t, lines[1], "call.mp3")
	assert.Contains(t, lines[1], testutil.RefundSummary)
	assert.Contains(t, lines[2], "chat")

	var out bytes.Buffer
	require.NoError(t, printEntries(&out, entries, true))
	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "b", decoded[0]["id"])
	assert.Equal(t, "call", decoded[0]["type"])
}

func TestPrintEntries_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printEntries(&out, nil, false))
	assert.Equal(t, "no history yet\n", out.String())
}
