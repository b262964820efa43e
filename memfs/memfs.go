package memfs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/akalin/scripter/fs"
)

// RootDir returns a string representing a root directory. On
// Unix-like systems this is just /, but on Windows it may be C:\ or
// some other drive letter.
func RootDir() string {
	// Only Windows has a VolumeName, e.g. C:. We don't care which
	// drive the current working directory is on. On all other
	// platforms volName is empty.
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	volName := filepath.VolumeName(filepath.Clean(wd))
	return volName + string(filepath.Separator)
}

func fileDataToAbsPaths(workingDir string, fileData map[string][]byte) map[string][]byte {
	newFileData := make(map[string][]byte)
	for path, data := range fileData {
		newFileData[toAbsPath(workingDir, path)] = data
	}
	return newFileData
}

func toAbsPath(workingDir, path string) string {
	if !filepath.IsAbs(workingDir) {
		panic("workingDir must be an absolute path")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(workingDir, path)
}

// MemFS is a simple in-memory filesystem with a working
// directory. It's intended mainly for testing.
//
// MemFS has value semantics over shared maps, so copies of a MemFS
// see each other's writes.
type MemFS struct {
	workingDir string
	fileData   map[string][]byte
	errs       map[string]error
	ofm        fs.OpenFileManager
}

// MakeMemFS makes a MemFS from the given working directory and file
// data. Relative paths in fileData are resolved against workingDir.
func MakeMemFS(workingDir string, fileData map[string][]byte) MemFS {
	return MemFS{
		workingDir: workingDir,
		fileData:   fileDataToAbsPaths(workingDir, fileData),
		errs:       make(map[string]error),
		ofm:        fs.MakeOpenFileManager(nil),
	}
}

// SetError makes every later attempt to open, read or write the file
// at path fail with err, until it is cleared with a nil err.
func (mfs MemFS) SetError(path string, err error) {
	absPath := toAbsPath(mfs.workingDir, path)
	if err == nil {
		delete(mfs.errs, absPath)
		return
	}
	mfs.errs[absPath] = err
}

func (mfs MemFS) pathError(op, absPath string) error {
	if err, ok := mfs.errs[absPath]; ok {
		return &os.PathError{Op: op, Path: absPath, Err: err}
	}
	return nil
}

// ReadFile returns the data of the file at the given path, which may
// be absolute or relative (to the working directory). If the file
// doesn't exist, an error satisfying os.IsNotExist is returned.
func (mfs MemFS) ReadFile(path string) ([]byte, error) {
	absPath := toAbsPath(mfs.workingDir, path)
	if err := mfs.pathError("open", absPath); err != nil {
		return nil, err
	}
	if data, ok := mfs.fileData[absPath]; ok {
		return data, nil
	}
	return nil, &os.PathError{Op: "open", Path: absPath, Err: os.ErrNotExist}
}

// MakeReadStream returns a ReadStream over data.
func MakeReadStream(data []byte) fs.ReadStream {
	return fs.ReadCloserToStream(io.NopCloser(bytes.NewReader(data)), int64(len(data)))
}

// GetReadStream returns a ReadStream for the file at the given path,
// which may be absolute or relative (to the working directory).
func (mfs MemFS) GetReadStream(path string) (fs.ReadStream, error) {
	absPath := toAbsPath(mfs.workingDir, path)
	return mfs.ofm.GetReadStream(absPath, func(absPath string) (fs.ReadStream, error) {
		data, err := mfs.ReadFile(absPath)
		if err != nil {
			return nil, err
		}
		return MakeReadStream(data), nil
	})
}

// FindWithPrefixAndSuffix returns all files whose path matches the
// given prefix and suffix, sorted. The prefix may be absolute or
// relative (to the working directory).
func (mfs MemFS) FindWithPrefixAndSuffix(prefix, suffix string) ([]string, error) {
	absPrefix := toAbsPath(mfs.workingDir, prefix)
	if strings.HasSuffix(prefix, string(filepath.Separator)) {
		// filepath.Join drops the trailing separator.
		absPrefix += string(filepath.Separator)
	}
	var matches []string
	for _, filename := range mfs.Paths() {
		if len(filename) >= len(absPrefix)+len(suffix) && strings.HasPrefix(filename, absPrefix) && strings.HasSuffix(filename, suffix) {
			matches = append(matches, filename)
		}
	}
	return matches, nil
}

type writeStream struct {
	fileData map[string][]byte
	absPath  string
}

func (w writeStream) Write(p []byte) (int, error) {
	w.fileData[w.absPath] = append(w.fileData[w.absPath], p...)
	return len(p), nil
}

func (writeStream) Close() error {
	return nil
}

// GetWriteStream truncates (or creates) the file at the given path
// and returns a WriteStream that appends to it.
func (mfs MemFS) GetWriteStream(path string) (fs.WriteStream, error) {
	absPath := toAbsPath(mfs.workingDir, path)
	return mfs.ofm.GetWriteStream(absPath, func(absPath string) (fs.WriteStream, error) {
		if err := mfs.pathError("open", absPath); err != nil {
			return nil, err
		}
		mfs.fileData[absPath] = []byte{}
		return writeStream{mfs.fileData, absPath}, nil
	})
}

// GetOpenFilePaths returns the absolute paths of files with open
// streams, sorted.
func (mfs MemFS) GetOpenFilePaths() []string {
	return mfs.ofm.GetOpenFilePaths()
}

// FileCount returns the total number of files.
func (mfs MemFS) FileCount() int {
	return len(mfs.fileData)
}

// Paths returns the absolute paths of all files in fs, sorted.
func (mfs MemFS) Paths() []string {
	var paths []string
	for path := range mfs.fileData {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
