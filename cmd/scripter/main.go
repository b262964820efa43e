package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/akalin/scripter/config"
	"github.com/akalin/scripter/document"
	"github.com/akalin/scripter/errorcode"
	"github.com/akalin/scripter/fs"
	"github.com/akalin/scripter/logger"
	"github.com/akalin/scripter/textenc"
)

type logDelegate struct{}

func (logDelegate) OnOpen(path string, byteCount int, err error) {
	if err != nil {
		logger.Log.Error("open failed", zap.String("path", path), zap.Error(err))
	} else {
		logger.Log.Debug("opened", zap.String("path", path), zap.Int("bytes", byteCount))
	}
}

func (logDelegate) OnSave(path string, byteCount int, err error) {
	if err != nil {
		logger.Log.Error("save failed", zap.String("path", path), zap.Error(err))
	} else {
		logger.Log.Debug("saved", zap.String("path", path), zap.Int("bytes", byteCount))
	}
}

func printUsage(w io.Writer, name string) {
	name = filepath.Base(name)
	fmt.Fprintf(w, `
Usage:
  %s cat <file>
  %s w(rite) <file>                      (reads stdin)
  %s c(ompare) <file> <candidate file>
  %s l(ist) <dir>

`, name, name, name, name)
}

// exitCodeFor maps an error from reading, writing or converting a
// file to an exit code. Anything that isn't a codec error came from
// the filesystem, whether it's an *os.PathError, a short write or a
// stream that ended early.
func exitCodeFor(err error) errorcode.Errorcode {
	var decodeErr *textenc.DecodeError
	var encodeErr *textenc.EncodeError
	switch {
	case err == nil:
		return errorcode.Success
	case errors.As(err, &decodeErr), errors.As(err, &encodeErr):
		return errorcode.DecodeError
	}
	return errorcode.FileIOError
}

type env struct {
	cfg    config.Config
	fs     fs.FS
	stdin  io.Reader
	stdout io.Writer
}

func (e env) newDocument(path string) (*document.Document, bool) {
	doc, err := document.NewWithOptions(path, document.Options{
		FS:                e.fs,
		Encoding:          e.cfg.Encoding,
		UniversalNewlines: e.cfg.UniversalNewlines,
		Delegate:          logDelegate{},
	})
	if err != nil {
		logger.Sugar.Errorf("Creating document for %q failed: %v", path, err)
		return nil, false
	}
	return doc, true
}

// readCandidate reads and decodes the file at path the same way a
// Document would, without creating one.
func (e env) readCandidate(path string) (string, error) {
	codec, err := textenc.Lookup(e.cfg.Encoding)
	if err != nil {
		return "", err
	}
	raw, err := e.fs.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := codec.Decode(raw)
	if err != nil {
		return "", err
	}
	if e.cfg.UniversalNewlines {
		text = textenc.NormalizeNewlines(text)
	}
	return text, nil
}

func (e env) cat(path string) errorcode.Errorcode {
	doc, ok := e.newDocument(path)
	if !ok {
		return errorcode.LogicError
	}
	if err := doc.Open(""); err != nil {
		return exitCodeFor(err)
	}
	if _, err := io.WriteString(e.stdout, doc.Data()); err != nil {
		logger.Sugar.Errorf("Writing to stdout failed: %v", err)
		return errorcode.FileIOError
	}
	return errorcode.Success
}

func (e env) write(path string) errorcode.Errorcode {
	doc, ok := e.newDocument(path)
	if !ok {
		return errorcode.LogicError
	}
	input, err := io.ReadAll(e.stdin)
	if err != nil {
		logger.Sugar.Errorf("Reading stdin failed: %v", err)
		return errorcode.FileIOError
	}
	doc.SetData(string(input))
	if err := doc.Save(); err != nil {
		return exitCodeFor(err)
	}
	return errorcode.Success
}

func (e env) compare(path, candidatePath string) errorcode.Errorcode {
	doc, ok := e.newDocument(path)
	if !ok {
		return errorcode.LogicError
	}
	if err := doc.Open(""); err != nil {
		return exitCodeFor(err)
	}
	candidate, err := e.readCandidate(candidatePath)
	if err != nil {
		logger.Log.Error("reading candidate failed", zap.String("path", candidatePath), zap.Error(err))
		return exitCodeFor(err)
	}

	same := doc.Compare(candidate)
	fmt.Fprintf(e.stdout, "%t\n", same)
	if !same {
		return errorcode.Mismatch
	}
	return errorcode.Success
}

func (e env) list(dir string) errorcode.Errorcode {
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	matches, err := e.fs.FindWithPrefixAndSuffix(prefix, e.cfg.Suffix)
	if err != nil {
		logger.Sugar.Errorf("Listing %q failed: %v", dir, err)
		return errorcode.FileIOError
	}
	for _, match := range matches {
		fmt.Fprintln(e.stdout, match)
	}
	return errorcode.Success
}

func run(args []string, e env) errorcode.Errorcode {
	name := args[0]
	if len(args) <= 2 {
		printUsage(e.stdout, name)
		return errorcode.InvalidCommandLineArguments
	}

	cmd := args[1]
	path := args[2]
	logger.Log.Debug("running", zap.String("command", cmd), zap.String("path", path))

	switch strings.ToLower(cmd) {
	case "cat":
		return e.cat(path)

	case "w", "write":
		return e.write(path)

	case "c", "compare":
		if len(args) != 4 {
			printUsage(e.stdout, name)
			return errorcode.InvalidCommandLineArguments
		}
		return e.compare(path, args[3])

	case "l", "list":
		return e.list(path)
	}

	printUsage(e.stdout, name)
	return errorcode.InvalidCommandLineArguments
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(int(errorcode.InvalidCommandLineArguments))
	}
	logger.Init(cfg.Debug)
	defer func() { _ = logger.Log.Sync() }()

	code := run(os.Args, env{
		cfg:    cfg,
		fs:     fs.DefaultFS{},
		stdin:  os.Stdin,
		stdout: os.Stdout,
	})
	if code != errorcode.Success {
		logger.Log.Debug("exiting", zap.Int("code", int(code)), zap.Stringer("status", code))
		_ = logger.Log.Sync()
		os.Exit(int(code))
	}
}
