package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// IOError reports a ledger file that could not be read or written.
type IOError struct {
	Err  error
	Op   string
	Path string
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s ledger file %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// LoadResult describes the outcome of Load.
type LoadResult struct {
	// Found is false when no file existed at the path. That is not an error:
	// it means there is no prior data.
	Found bool
	// Loaded is the number of transactions appended to the ledger.
	Loaded int
	// Truncated is set when loading stopped at a malformed line.
	Truncated bool
	// StoppedAt is the line number of that malformed line.
	StoppedAt int
}

// Save writes every transaction to path in stored order, replacing any
// existing file. Any failure, including on close, is returned as *IOError.
func (l *Ledger) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: closeErr}
		}
	}()

	seq, _ := l.List()
	if err := Encode(f, seq); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Load appends the transactions stored at path. A missing file leaves the
// ledger unchanged and reports Found == false. A file that exists but cannot
// be read returns *IOError and leaves the ledger unchanged. Reading stops
// silently at the first malformed line, keeping everything before it.
func (l *Ledger) Load(path string) (LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LoadResult{}, nil
		}
		return LoadResult{}, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	decoded, err := Decode(f)
	if err != nil {
		return LoadResult{}, &IOError{Op: "read", Path: path, Err: err}
	}

	l.appendAll(decoded.Transactions)

	return LoadResult{
		Found:     true,
		Loaded:    len(decoded.Transactions),
		Truncated: decoded.Truncated,
		StoppedAt: decoded.StoppedAt,
	}, nil
}
