package fs

import (
	"errors"
	"io"
)

const maxInt = int(^uint(0) >> 1)

// ReadStream is a file opened for reading whose size is known up
// front. *os.File (with a Stat'd size) is the usual implementation;
// memfs provides another for tests.
type ReadStream interface {
	// A ReadStream must not be used once it is closed.
	// Implementations should return an error in that case, or
	// panic if that isn't possible.
	io.ReadCloser
	// ByteCount is the size of the file when it was opened, as
	// reported by the filesystem. It may be 0 for files that
	// still have content.
	ByteCount() int64
}

type readCloserStream struct {
	io.ReadCloser
	byteCount int64
}

func (rcs readCloserStream) ByteCount() int64 {
	return rcs.byteCount
}

// ReadCloserToStream makes a ReadStream out of the given ReadCloser
// and byte count.
func ReadCloserToStream(readCloser io.ReadCloser, byteCount int64) ReadStream {
	return readCloserStream{readCloser, byteCount}
}

// WriteStream is a file opened for writing, truncated on open.
type WriteStream interface {
	io.Writer
	io.Closer
}

// FS is the filesystem seen by the document package. Most code uses
// DefaultFS; tests use memfs.
type FS interface {
	// ReadFile should behave like os.ReadFile: it reads until EOF.
	ReadFile(path string) ([]byte, error)
	// GetReadStream returns a ReadStream for the file at the
	// given path.
	//
	// Only one stream may be open per (normalized) path.
	// Implementations should return an error if path already
	// has an open stream.
	//
	// Exactly one of the returned ReadStream and error is
	// non-nil.
	GetReadStream(path string) (ReadStream, error)
	// FindWithPrefixAndSuffix should behave like calling
	// filepath.Glob with prefix + "*" + suffix.
	FindWithPrefixAndSuffix(prefix, suffix string) ([]string, error)
	// GetWriteStream creates or truncates the file at the given
	// path and returns a WriteStream for it.
	//
	// Exactly one of the returned WriteStream and error is
	// non-nil.
	GetWriteStream(path string) (WriteStream, error)
}

// readStrict checks that len(buf) != 0, calls r.Read(buf), and checks
// that the return value isn't 0, nil.
func readStrict(r io.Reader, buf []byte) (n int, err error) {
	if len(buf) == 0 {
		return 0, errors.New("len(buf) == 0 unexpectedly in readStrict")
	}
	n, err = r.Read(buf)
	if n == 0 && err == nil {
		return n, errors.New("r.Read() returned 0, nil")
	}
	return n, err
}

// ReadAndClose reads readStream until EOF and closes it, in all
// cases. The first error wins; a Close error is only returned if the
// read succeeded.
//
// ByteCount only sizes the initial buffer. Files in /proc, pipes and
// character devices report 0 but still have content, and a file may
// grow after it was opened.
//
// If err == nil, the returned buffer is never nil, even if it has
// length 0.
func ReadAndClose(readStream ReadStream) (data []byte, err error) {
	defer func() {
		closeErr := readStream.Close()
		if err == nil {
			err = closeErr
		}
	}()
	byteCount := readStream.ByteCount()
	if byteCount < 0 {
		byteCount = 0
	}
	if int64(int(byteCount)) != byteCount || int(byteCount) == maxInt {
		return nil, errors.New("file too big to read into memory")
	}
	// One spare byte so that the read hitting EOF doesn't force a
	// reallocation.
	data = make([]byte, 0, int(byteCount)+1)
	for {
		if len(data) == cap(data) {
			data = append(data, 0)[:len(data)]
		}
		var n int
		n, err = readStrict(readStream, data[len(data):cap(data)])
		data = data[:len(data)+n]
		if err == io.EOF {
			return data, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// WriteAndClose writes all of data to writeStream and closes it, in
// all cases. The first error wins; a Close error is only returned if
// the write succeeded.
func WriteAndClose(writeStream WriteStream, data []byte) (err error) {
	defer func() {
		closeErr := writeStream.Close()
		if err == nil {
			err = closeErr
		}
	}()
	n, err := writeStream.Write(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return io.ErrShortWrite
	}
	return nil
}
