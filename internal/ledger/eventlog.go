package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxLineSize = 1 << 20

// EventLog is the append-only ledger file. It is opened once and written
// only through Append.
type EventLog struct {
	path string
	file *os.File
	w    *bufio.Writer
	size int64
	sync bool
	now  func() time.Time
}

// OpenEventLog opens path for appending, creating it and its directory when
// missing.
func OpenEventLog(path string, sync bool, now func() time.Time) (*EventLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("can not create ledger directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("can not open ledger %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("can not stat ledger %s: %w", path, err)
	}

	if now == nil {
		now = time.Now
	}

	return &EventLog{
		path: path,
		file: f,
		w:    bufio.NewWriter(f),
		size: info.Size(),
		sync: sync,
		now:  now,
	}, nil
}

func (l *EventLog) Path() string {
	return l.path
}

// Append stamps rec with the current time and writes it as one line. On
// failure the file is cut back to its previous length so no partial line
// is left behind.
func (l *EventLog) Append(rec Record) (Record, error) {
	rec.Timestamp = float64(l.now().UnixMicro()) / 1e6
	line := rec.String() + "\n"

	if err := l.write(line); err != nil {
		l.w.Reset(l.file)
		if terr := l.file.Truncate(l.size); terr != nil {
			return rec, errors.Join(fmt.Errorf("failed to append to ledger: %w", err), terr)
		}
		return rec, fmt.Errorf("failed to append to ledger: %w", err)
	}

	l.size += int64(len(line))
	return rec, nil
}

func (l *EventLog) write(line string) error {
	if _, err := l.w.WriteString(line); err != nil {
		return err
	}
	if err := l.w.Flush(); err != nil {
		return err
	}
	if l.sync {
		return l.file.Sync()
	}
	return nil
}

// Close flushes buffered writes and releases the file handle.
func (l *EventLog) Close() error {
	flushErr := l.w.Flush()
	closeErr := l.file.Close()
	return errors.Join(flushErr, closeErr)
}

// ScanRecords reads r line by line and hands each record to fn together with
// its 1-based line number. Blank lines are skipped. A line without a command
// stops the scan with a *CorruptLedgerError, as does any error from fn.
func ScanRecords(r io.Reader, fn func(line int, rec Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		rec, ok := parseRecord(text)
		if !ok {
			return &CorruptLedgerError{Line: lineNo, Err: fmt.Errorf("missing command in %q", text)}
		}
		if err := fn(lineNo, rec); err != nil {
			return err
		}
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read ledger: %w", err)
	}
	return nil
}
