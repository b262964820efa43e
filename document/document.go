// Package document holds a single text file's path and content in
// memory, and loads, saves and compares that content.
//
// A Document has one owner and no locking. Each Open and Save
// acquires a file handle and releases it before returning, on error
// paths too.
package document

import (
	"github.com/akalin/scripter/fs"
	"github.com/akalin/scripter/textenc"
)

// Delegate is notified after every Open and Save attempt.
type Delegate interface {
	// OnOpen is called with the path that was read, the number of
	// bytes read, and the resulting error, if any.
	OnOpen(path string, byteCount int, err error)
	// OnSave is called with the path that was written, the number
	// of bytes written, and the resulting error, if any.
	OnSave(path string, byteCount int, err error)
}

// DoNothingDelegate is an implementation of Delegate that does
// nothing for all methods.
type DoNothingDelegate struct{}

// OnOpen implements the Delegate interface.
func (DoNothingDelegate) OnOpen(path string, byteCount int, err error) {}

// OnSave implements the Delegate interface.
func (DoNothingDelegate) OnSave(path string, byteCount int, err error) {}

// Options holds all the options for NewWithOptions.
type Options struct {
	// The filesystem to use. If nil, fs.DefaultFS is used.
	FS fs.FS
	// The text encoding of the file. If empty,
	// textenc.DefaultEncoding is used.
	Encoding string
	// If true, "\r\n" and "\r" are read as "\n". Off by default,
	// unlike Python's text mode, so Data keeps the file's line
	// endings as written.
	UniversalNewlines bool
	// The Delegate to use. If nil, DoNothingDelegate is used.
	Delegate Delegate
}

// Document is one text file's path and its in-memory content.
type Document struct {
	fs                fs.FS
	codec             textenc.Codec
	universalNewlines bool
	delegate          Delegate

	filePath string
	data     string
}

// New returns a Document for filePath with empty data, using the
// real filesystem and UTF-8. Nothing is read until Open is called.
func New(filePath string) *Document {
	return &Document{
		fs:       fs.DefaultFS{},
		codec:    textenc.UTF8(),
		delegate: DoNothingDelegate{},
		filePath: filePath,
	}
}

// NewWithOptions is like New, but with the given options. The only
// error is an unknown options.Encoding.
func NewWithOptions(filePath string, options Options) (*Document, error) {
	codec, err := textenc.Lookup(options.Encoding)
	if err != nil {
		return nil, err
	}
	d := New(filePath)
	d.codec = codec
	d.universalNewlines = options.UniversalNewlines
	if options.FS != nil {
		d.fs = options.FS
	}
	if options.Delegate != nil {
		d.delegate = options.Delegate
	}
	return d, nil
}

// FilePath returns the path of the backing file.
func (d *Document) FilePath() string {
	return d.filePath
}

// Data returns the in-memory content.
func (d *Document) Data() string {
	return d.data
}

// SetData replaces the in-memory content. Nothing is validated or
// written until Save is called.
func (d *Document) SetData(data string) {
	d.data = data
}

// Open reads the whole backing file into Data. If filePath is
// non-empty it first replaces FilePath for good.
//
// Filesystem errors are returned as-is, so os.IsNotExist and
// os.IsPermission work on them; undecodable content gives a
// *textenc.DecodeError. On any error Data is left unchanged, but a
// new filePath stays in effect.
func (d *Document) Open(filePath string) (err error) {
	if filePath != "" {
		d.filePath = filePath
	}

	var raw []byte
	defer func() {
		d.delegate.OnOpen(d.filePath, len(raw), err)
	}()

	readStream, err := d.fs.GetReadStream(d.filePath)
	if err != nil {
		return err
	}
	raw, err = fs.ReadAndClose(readStream)
	if err != nil {
		return err
	}
	text, err := d.codec.Decode(raw)
	if err != nil {
		return err
	}
	if d.universalNewlines {
		text = textenc.NormalizeNewlines(text)
	}
	d.data = text
	return nil
}

// Save writes Data followed by a single "\n" to FilePath, creating
// or truncating the file. Saving and then opening therefore yields
// Data+"\n", not Data.
//
// Text that the encoding can't represent gives a
// *textenc.EncodeError before the file is touched. Filesystem errors
// are returned as-is.
func (d *Document) Save() (err error) {
	var raw []byte
	defer func() {
		d.delegate.OnSave(d.filePath, len(raw), err)
	}()

	encoded, err := d.codec.Encode(d.data + "\n")
	if err != nil {
		return err
	}
	writeStream, err := d.fs.GetWriteStream(d.filePath)
	if err != nil {
		return err
	}
	if err := fs.WriteAndClose(writeStream, encoded); err != nil {
		return err
	}
	raw = encoded
	return nil
}

// Compare reports whether newDoc equals Data. The length check is
// just a fast path.
func (d *Document) Compare(newDoc string) bool {
	if len(d.data) != len(newDoc) {
		return false
	}
	return newDoc == d.data
}
