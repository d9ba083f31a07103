package ledger

import (
	"strconv"
	"strings"
)

// Command is the second field of a ledger line.
type Command string

const (
	CommandOpen       Command = "open"
	CommandTransfer   Command = "transfer"
	CommandAuthorize  Command = "authorize"
	CommandAddBalance Command = "add-balance"
)

// Record is one ledger line: a Unix timestamp, a command and its arguments.
type Record struct {
	Timestamp float64
	Command   Command
	Args      []string
}

func newRecord(cmd Command, args ...string) Record {
	return Record{Command: cmd, Args: args}
}

// String renders the record as it appears in the ledger, without the
// trailing newline.
func (r Record) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(r.Timestamp, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(string(r.Command))
	for _, arg := range r.Args {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	return b.String()
}

// AccountIDs lists the local identifiers the record refers to, in argument
// order and without duplicates.
func (r Record) AccountIDs() []string {
	var n int
	switch r.Command {
	case CommandOpen, CommandAddBalance:
		n = 1
	case CommandTransfer:
		n = 3
	case CommandAuthorize:
		n = 2
	}
	n = min(n, len(r.Args))

	ids := make([]string, 0, n)
	for _, id := range r.Args[:n] {
		dup := false
		for _, seen := range ids {
			if seen == id {
				dup = true
				break
			}
		}
		if !dup {
			ids = append(ids, id)
		}
	}
	return ids
}

// parseRecord splits a ledger line on whitespace. The timestamp is kept when
// it parses and otherwise left at zero; replay never looks at it.
func parseRecord(line string) (Record, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Record{}, false
	}

	ts, _ := strconv.ParseFloat(fields[0], 64)
	return Record{
		Timestamp: ts,
		Command:   Command(fields[1]),
		Args:      fields[2:],
	}, true
}
