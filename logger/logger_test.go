package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitWithWriter(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, false)
	Log.Debug("hidden")
	Log.Info("opened", zap.String("path", "a.py"))
	require.NoError(t, Log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "INFO", entry["level"])
	require.Equal(t, "opened", entry["msg"])
	require.Equal(t, "a.py", entry["path"])
	require.Contains(t, entry, "timestamp")
	require.Contains(t, entry, "caller")
}

func TestInitWithWriterDebug(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, true)
	Sugar.Debugf("saved %d bytes", 6)
	require.NoError(t, Log.Sync())
	require.Contains(t, buf.String(), `"level":"DEBUG"`)
	require.Contains(t, buf.String(), "saved 6 bytes")
}
