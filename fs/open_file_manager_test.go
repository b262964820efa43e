package fs

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type nopWriteStream struct {
	bytes.Buffer
}

func (*nopWriteStream) Close() error { return nil }

func getTestReadStream(string) (ReadStream, error) {
	return ReadCloserToStream(io.NopCloser(bytes.NewReader([]byte("abc"))), 3), nil
}

func TestOpenFileManagerReadStream(t *testing.T) {
	ofm := MakeOpenFileManager(t)

	readStream, err := ofm.GetReadStream("a.py", getTestReadStream)
	require.NoError(t, err)
	require.Equal(t, []string{"a.py"}, ofm.GetOpenFilePaths())

	_, err = ofm.GetReadStream("a.py", getTestReadStream)
	require.EqualError(t, err, `"a.py" is already open`)

	data, err := ReadAndClose(readStream)
	require.NoError(t, err)
	require.Equal(t, "abc", string(data))
	require.Empty(t, ofm.GetOpenFilePaths())

	require.EqualError(t, readStream.Close(), `"a.py" is already closed`)
	_, err = readStream.Read(make([]byte, 1))
	require.EqualError(t, err, `"a.py" is already closed`)
	require.Panics(t, func() { readStream.ByteCount() })
}

func TestOpenFileManagerWriteStream(t *testing.T) {
	ofm := MakeOpenFileManager(nil)

	w := &nopWriteStream{}
	writeStream, err := ofm.GetWriteStream("b.py", func(string) (WriteStream, error) {
		return w, nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"b.py"}, ofm.GetOpenFilePaths())

	_, err = ofm.GetReadStream("b.py", getTestReadStream)
	require.EqualError(t, err, `"b.py" is already open`)

	require.NoError(t, WriteAndClose(writeStream, []byte("x = 1\n")))
	require.Equal(t, "x = 1\n", w.String())
	require.Empty(t, ofm.GetOpenFilePaths())

	_, err = writeStream.Write([]byte("more"))
	require.EqualError(t, err, `"b.py" is already closed`)
}

func TestOpenFileManagerGetterError(t *testing.T) {
	ofm := MakeOpenFileManager(t)

	expectedErr := errors.New("permission denied")
	readStream, err := ofm.GetReadStream("c.py", func(string) (ReadStream, error) {
		return nil, expectedErr
	})
	require.Equal(t, expectedErr, err)
	require.Nil(t, readStream)

	writeStream, err := ofm.GetWriteStream("c.py", func(string) (WriteStream, error) {
		return nil, expectedErr
	})
	require.Equal(t, expectedErr, err)
	require.Nil(t, writeStream)
	require.Empty(t, ofm.GetOpenFilePaths())
}
