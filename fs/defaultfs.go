package fs

import (
	"errors"
	"os"
	"path/filepath"
)

var errIsDirectory = errors.New("is a directory")

// DefaultFS implements FS directly on top of the os package.
type DefaultFS struct{}

type fileWithByteCount struct {
	*os.File
	byteCount int64
}

func (f fileWithByteCount) ByteCount() int64 {
	return f.byteCount
}

// closeOnError closes f if it and err are both non-nil.
func closeOnError(f *os.File, err error) {
	if f != nil && err != nil {
		_ = f.Close()
	}
}

// ReadFile calls os.ReadFile.
func (DefaultFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// GetReadStream calls os.Open and uses (*File).Stat to get the byte
// count of the opened file. Opening a directory fails here rather
// than on the first read.
//
// Exactly one of the returned ReadStream and error is non-nil.
func (DefaultFS) GetReadStream(path string) (ReadStream, error) {
	f, err := os.Open(path)
	defer func() { closeOnError(f, err) }()
	if err != nil {
		return nil, err
	}
	s, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if s.IsDir() {
		err = &os.PathError{Op: "open", Path: path, Err: errIsDirectory}
		return nil, err
	}
	return fileWithByteCount{f, s.Size()}, nil
}

// FindWithPrefixAndSuffix uses filepath.Glob to find files with the
// given prefix and suffix.
func (DefaultFS) FindWithPrefixAndSuffix(prefix, suffix string) ([]string, error) {
	return filepath.Glob(prefix + "*" + suffix)
}

// GetWriteStream calls os.Create.
//
// Exactly one of the returned WriteStream and error is non-nil.
func (DefaultFS) GetWriteStream(path string) (WriteStream, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
