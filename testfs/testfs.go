package testfs

import (
	"testing"

	"github.com/akalin/scripter/fs"
)

type testFS struct {
	t  *testing.T
	fs fs.FS
}

// MakeTestFS returns a fs.FS implementation that wraps the existing
// implementation, logging every call to the given *testing.T.
func MakeTestFS(t *testing.T, fs fs.FS) fs.FS {
	return testFS{t, fs}
}

func (fs testFS) ReadFile(path string) (data []byte, err error) {
	fs.t.Helper()
	defer func() {
		fs.t.Helper()
		fs.t.Logf("ReadFile(%q) => (%d bytes, %v)", path, len(data), err)
	}()
	return fs.fs.ReadFile(path)
}

func (fs testFS) GetReadStream(path string) (readStream fs.ReadStream, err error) {
	fs.t.Helper()
	defer func() {
		fs.t.Helper()
		var byteCount int64
		if readStream != nil {
			byteCount = readStream.ByteCount()
		}
		fs.t.Logf("GetReadStream(%q) => (%d bytes, %v)", path, byteCount, err)
	}()
	return fs.fs.GetReadStream(path)
}

func (fs testFS) FindWithPrefixAndSuffix(prefix, suffix string) (matches []string, err error) {
	fs.t.Helper()
	defer func() {
		fs.t.Helper()
		fs.t.Logf("FindWithPrefixAndSuffix(%q, %q) => (%d files, %v)", prefix, suffix, len(matches), err)
	}()
	return fs.fs.FindWithPrefixAndSuffix(prefix, suffix)
}

func (fs testFS) GetWriteStream(path string) (writeStream fs.WriteStream, err error) {
	fs.t.Helper()
	defer func() {
		fs.t.Helper()
		fs.t.Logf("GetWriteStream(%q) => %v", path, err)
	}()
	return fs.fs.GetWriteStream(path)
}
