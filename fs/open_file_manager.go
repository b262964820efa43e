package fs

import (
	"fmt"
	"io"
	"sort"
)

// Helperer is the interface that wraps the Helper method, usually
// implemented by *testing.T.
type Helperer interface {
	Helper()
}

type doNothingHelperer struct{}

func (doNothingHelperer) Helper() {}

// OpenFileManager tracks the streams currently open on a filesystem,
// so that leaked or doubly-closed handles show up as errors.
type OpenFileManager struct {
	h         Helperer
	openFiles map[string]bool
}

// MakeOpenFileManager returns an empty OpenFileManager. h may be nil.
func MakeOpenFileManager(h Helperer) OpenFileManager {
	if h == nil {
		h = doNothingHelperer{}
	}
	return OpenFileManager{h, make(map[string]bool)}
}

type checkingCloser struct {
	h         Helperer
	closer    io.Closer
	openFiles map[string]bool
	path      string
	closed    bool
}

func (cc *checkingCloser) verifyNotClosed() error {
	if cc.closed {
		return fmt.Errorf("%q is already closed", cc.path)
	}
	return nil
}

func (cc *checkingCloser) Close() error {
	cc.h.Helper()
	if err := cc.verifyNotClosed(); err != nil {
		return err
	}
	cc.closed = true
	delete(cc.openFiles, cc.path)
	return cc.closer.Close()
}

type checkingReadStream struct {
	*checkingCloser
	readStream ReadStream
}

func (crs checkingReadStream) Read(p []byte) (int, error) {
	crs.h.Helper()
	if err := crs.verifyNotClosed(); err != nil {
		return 0, err
	}
	return crs.readStream.Read(p)
}

func (crs checkingReadStream) ByteCount() int64 {
	crs.h.Helper()
	if err := crs.verifyNotClosed(); err != nil {
		panic(err)
	}
	return crs.readStream.ByteCount()
}

type checkingWriteStream struct {
	*checkingCloser
	writeStream WriteStream
}

func (cws checkingWriteStream) Write(p []byte) (int, error) {
	cws.h.Helper()
	if err := cws.verifyNotClosed(); err != nil {
		return 0, err
	}
	return cws.writeStream.Write(p)
}

func (ofm OpenFileManager) checkNotOpen(path string) error {
	// Different paths that name the same file aren't detected.
	if ofm.openFiles[path] {
		return fmt.Errorf("%q is already open", path)
	}
	return nil
}

func (ofm OpenFileManager) track(path string, closer io.Closer) *checkingCloser {
	ofm.openFiles[path] = true
	return &checkingCloser{ofm.h, closer, ofm.openFiles, path, false}
}

// GetReadStream wraps the given ReadStream getter so that path is
// open at most once at a time.
func (ofm OpenFileManager) GetReadStream(path string, getReadStream func(string) (ReadStream, error)) (ReadStream, error) {
	ofm.h.Helper()
	if err := ofm.checkNotOpen(path); err != nil {
		return nil, err
	}
	readStream, err := getReadStream(path)
	if err != nil {
		return nil, err
	}
	return checkingReadStream{ofm.track(path, readStream), readStream}, nil
}

// GetWriteStream wraps the given WriteStream getter so that path is
// open at most once at a time.
func (ofm OpenFileManager) GetWriteStream(path string, getWriteStream func(string) (WriteStream, error)) (WriteStream, error) {
	ofm.h.Helper()
	if err := ofm.checkNotOpen(path); err != nil {
		return nil, err
	}
	writeStream, err := getWriteStream(path)
	if err != nil {
		return nil, err
	}
	return checkingWriteStream{ofm.track(path, writeStream), writeStream}, nil
}

// GetOpenFilePaths returns the paths with open streams, sorted.
func (ofm OpenFileManager) GetOpenFilePaths() []string {
	var paths []string
	for path := range ofm.openFiles {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
