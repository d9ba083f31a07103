package ledger

import (
	"log/slog"
	"time"
)

// RecordHook observes every record a server commits, together with
// snapshots of the accounts it touched. It runs under the server's write
// lock and must not call back into the server.
type RecordHook func(rec Record, affected []AccountSnapshot)

type options struct {
	policy Policy
	logger *slog.Logger
	hook   RecordHook
	sync   bool
	now    func() time.Time
}

// Option configures a server.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		policy: PermissivePolicy{},
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPolicy sets the authorization policy for live calls.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		if p != nil {
			o.policy = p
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRecordHook registers a hook called after each committed record.
func WithRecordHook(hook RecordHook) Option {
	return func(o *options) {
		o.hook = hook
	}
}

// WithSync makes the ledger fsync after every record.
func WithSync(sync bool) Option {
	return func(o *options) {
		o.sync = sync
	}
}

// WithClock overrides the time source used for ledger timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
