package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/r-anthony-graves/taskWolf/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestWriteNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current.json")
	w := &WriterService{FilePath: path}

	entries := []domain.Entry{
		{ID: "a", Title: "First", Timestamp: "2026-08-25T10:00:00"},
		{ID: "b", Title: "Second", Timestamp: "2026-08-25T09:00:00"},
	}
	require.NoError(t, w.Write(entries))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var got []domain.Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e domain.Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		got = append(got, e)
	}
	require.Equal(t, entries, got)
}

func TestWriteTruncatesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current.json")
	w := &WriterService{FilePath: path}

	require.NoError(t, w.Write([]domain.Entry{
		{ID: "old1", Title: "Old", Timestamp: "2026-08-24T10:00:00"},
		{ID: "old2", Title: "Old", Timestamp: "2026-08-24T10:00:00"},
	}))
	require.NoError(t, w.Write([]domain.Entry{
		{ID: "new", Title: "New", Timestamp: "2026-08-25T10:00:00"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "old1")
	require.Contains(t, string(data), "new")
}
