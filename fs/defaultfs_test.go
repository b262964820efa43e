package fs

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultFSStreams(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.py")

	var fs DefaultFS
	writeStream, err := fs.GetWriteStream(path)
	require.NoError(t, err)
	require.NoError(t, WriteAndClose(writeStream, []byte("print('hi')\n")))

	readStream, err := fs.GetReadStream(path)
	require.NoError(t, err)
	require.Equal(t, int64(12), readStream.ByteCount())
	data, err := ReadAndClose(readStream)
	require.NoError(t, err)
	require.Equal(t, "print('hi')\n", string(data))
}

func TestDefaultFSWriteStreamTruncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.py")
	require.NoError(t, os.WriteFile(path, []byte("a much longer old body\n"), 0644))

	var fs DefaultFS
	writeStream, err := fs.GetWriteStream(path)
	require.NoError(t, err)
	require.NoError(t, WriteAndClose(writeStream, []byte("new\n")))

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new\n", string(data))
}

func TestDefaultFSGetReadStreamNotExist(t *testing.T) {
	var fs DefaultFS
	readStream, err := fs.GetReadStream(filepath.Join(t.TempDir(), "missing.py"))
	require.True(t, os.IsNotExist(err))
	require.Nil(t, readStream)
}

func TestDefaultFSGetReadStreamDirectory(t *testing.T) {
	var fs DefaultFS
	readStream, err := fs.GetReadStream(t.TempDir())
	require.Error(t, err)
	require.ErrorIs(t, err, errIsDirectory)
	require.Nil(t, readStream)
}

func TestDefaultFSGetWriteStreamMissingDir(t *testing.T) {
	var fs DefaultFS
	writeStream, err := fs.GetWriteStream(filepath.Join(t.TempDir(), "no", "such", "dir.py"))
	require.True(t, os.IsNotExist(err))
	// Must be an untyped nil, not a nil *os.File.
	require.True(t, writeStream == nil)
}

func TestDefaultFSFindWithPrefixAndSuffix(t *testing.T) {
	dir := t.TempDir()
	var fs DefaultFS
	for _, name := range []string{"a.py", "b.py", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	matches, err := fs.FindWithPrefixAndSuffix(dir+string(filepath.Separator), ".py")
	require.NoError(t, err)
	sort.Strings(matches)
	require.Equal(t, []string{filepath.Join(dir, "a.py"), filepath.Join(dir, "b.py")}, matches)
}

func TestDefaultFSZeroStatSize(t *testing.T) {
	const path = "/proc/self/cmdline"
	if _, err := os.Stat(path); err != nil {
		t.Skipf("%s not available: %v", path, err)
	}

	var fs DefaultFS
	readStream, err := fs.GetReadStream(path)
	require.NoError(t, err)
	require.Equal(t, int64(0), readStream.ByteCount())
	data, err := ReadAndClose(readStream)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}
