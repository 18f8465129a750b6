package handlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/coder/quartz"
)

// Writer appends HandRecords as JSONL, flushing after every write so a
// crash never loses more than an in-flight record.
type Writer struct {
	file  *os.File
	buf   *bufio.Writer
	clock quartz.Clock
	date  string
	seq   uint32
}

// Create opens (or truncates) path for writing, creating parent
// directories as needed. The sequence counter starts at zero for
// NextID; callers that need it to survive a restart should track date
// rollover externally.
func Create(path string, clock quartz.Clock) (*Writer, error) {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{
		file:  f,
		buf:   bufio.NewWriter(f),
		clock: clock,
		date:  clock.Now().UTC().Format("20060102"),
	}, nil
}

// OpenAppend opens path for appending, creating it and its parent
// directories if absent, for resuming a previously interrupted write
// session. startSeq sets NextID's first value so hand ids continue
// the existing sequence rather than restarting at one; the caller
// determines startSeq by counting the records already in path.
func OpenAppend(path string, clock quartz.Clock, startSeq uint32) (*Writer, error) {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Writer{
		file:  f,
		buf:   bufio.NewWriter(f),
		clock: clock,
		date:  clock.Now().UTC().Format("20060102"),
		seq:   startSeq,
	}, nil
}

// NextID allocates the next monotonic hand id for today's date.
func (w *Writer) NextID() string {
	w.seq++
	return FormatHandID(w.date, w.seq)
}

// Write appends one record as a single JSONL line, injecting the
// current timestamp (RFC3339, seconds precision) if Ts is empty, and
// flushes immediately.
func (w *Writer) Write(record HandRecord) error {
	if record.Ts == "" {
		record.Ts = w.clock.Now().UTC().Format(time.RFC3339)
	}
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if _, err := w.buf.Write(line); err != nil {
		return err
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return err
	}
	return w.buf.Flush()
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
