// Package errorcode holds the exit codes of the scripter command.
package errorcode

// Errorcode is a process exit status.
type Errorcode int

const (
	Success                     Errorcode = 0
	Mismatch                    Errorcode = 1
	InvalidCommandLineArguments Errorcode = 2
	FileIOError                 Errorcode = 3
	DecodeError                 Errorcode = 4
	LogicError                  Errorcode = 5
)

func (c Errorcode) String() string {
	switch c {
	case Success:
		return "success"
	case Mismatch:
		return "mismatch"
	case InvalidCommandLineArguments:
		return "invalid command line arguments"
	case FileIOError:
		return "file i/o error"
	case DecodeError:
		return "decode error"
	case LogicError:
		return "logic error"
	}
	return "unknown"
}
