// Package testlog records logx output so tests can assert on what was logged.
package testlog

import (
	"sync"

	"service-driver/internal/logx"
)

// Entry is one recorded log call with the logger's bound fields merged in.
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Field returns the value of the last field named key.
func (e Entry) Field(key string) (any, bool) {
	for i := len(e.Fields) - 1; i >= 0; i-- {
		if e.Fields[i].Key == key {
			return e.Fields[i].Value, true
		}
	}
	return nil, false
}

// Recorder collects entries from every logger it hands out. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func New() *Recorder { return &Recorder{} }

// Logger returns a logx.Logger writing into r.
func (r *Recorder) Logger() logx.Logger {
	return &recLogger{rec: r}
}

// Entries returns a snapshot of everything logged so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Find returns the first entry with the given message.
func (r *Recorder) Find(msg string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Msg == msg {
			return e, true
		}
	}
	return Entry{}, false
}

// Has reports whether msg was logged at any level.
func (r *Recorder) Has(msg string) bool {
	_, ok := r.Find(msg)
	return ok
}

func (r *Recorder) record(level, msg string, bound, fields []logx.Field) {
	all := make([]logx.Field, 0, len(bound)+len(fields))
	all = append(all, bound...)
	all = append(all, fields...)

	r.mu.Lock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: all})
	r.mu.Unlock()
}

type recLogger struct {
	rec   *Recorder
	bound []logx.Field
}

func (l *recLogger) Debug(msg string, f ...logx.Field) { l.rec.record("debug", msg, l.bound, f) }
func (l *recLogger) Info(msg string, f ...logx.Field)  { l.rec.record("info", msg, l.bound, f) }
func (l *recLogger) Warn(msg string, f ...logx.Field)  { l.rec.record("warn", msg, l.bound, f) }
func (l *recLogger) Error(msg string, f ...logx.Field) { l.rec.record("error", msg, l.bound, f) }

func (l *recLogger) With(f ...logx.Field) logx.Logger {
	bound := make([]logx.Field, 0, len(l.bound)+len(f))
	bound = append(bound, l.bound...)
	bound = append(bound, f...)
	return &recLogger{rec: l.rec, bound: bound}
}

func (l *recLogger) Sync() error { return nil }
