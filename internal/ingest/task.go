// Package ingest runs the background reader that turns a source into
// batches of lines.
package ingest

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/TimelordUK/least/internal/event"
	"github.com/TimelordUK/least/internal/source"
	"github.com/TimelordUK/least/internal/textutil"
)

const (
	// FlushInterval bounds how long completed lines wait before delivery.
	FlushInterval = 16 * time.Millisecond

	chunkSize = 64 * 1024
)

// errSinkClosed stops the reader quietly once nobody is listening.
var errSinkClosed = errors.New("event sink closed")

// Options tunes a reader task. Zero values select the defaults.
type Options struct {
	TabWidth      int
	FlushInterval time.Duration
	Logger        *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.TabWidth == 0 {
		o.TabWidth = textutil.DefaultTabWidth
	}
	if o.FlushInterval <= 0 {
		o.FlushInterval = FlushInterval
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Task is the handle of a running reader.
type Task struct {
	done chan struct{}
	err  error
}

// Spawn opens src on a new goroutine and streams its lines into sink. The
// sink receives NewLines events followed by exactly one EndOfInput or
// ReaderFailed, then ReaderTerminationObserved once the goroutine is done.
func Spawn(src source.Source, sink event.Sink, opts Options) *Task {
	opts = opts.withDefaults()
	t := &Task{done: make(chan struct{})}
	go func() {
		t.err = run(src, sink, opts)
		close(t.done)
		sink.Send(event.ReaderTerminationObserved{})
	}()
	return t
}

// Wait blocks until the reader goroutine returns and reports its failure,
// if any.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// Done is closed once the reader goroutine has returned.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

func run(src source.Source, sink event.Sink, opts Options) error {
	stream, err := src.Open()
	if err != nil {
		opts.Logger.Debug("source open failed", "error", err)
		sink.Send(event.ReaderFailed{Cause: err})
		return err
	}
	defer stream.Close()

	r := newReader(stream, sink, opts)
	err = r.loop()
	switch {
	case errors.Is(err, errSinkClosed):
		opts.Logger.Debug("event sink closed, reader exiting")
		return nil
	case err != nil:
		opts.Logger.Debug("reader failed", "error", err)
		sink.Send(event.ReaderFailed{Cause: err})
		return err
	}
	return nil
}

type stream interface {
	io.Reader
	Fd() uintptr
	ReadError(error) error
}

type reader struct {
	stream    stream
	sink      event.Sink
	split     splitter
	interval  time.Duration
	lastFlush time.Time
	buf       []byte
	log       *slog.Logger
}

func newReader(s stream, sink event.Sink, opts Options) *reader {
	return &reader{
		stream:    s,
		sink:      sink,
		split:     splitter{tabWidth: opts.TabWidth},
		interval:  opts.FlushInterval,
		lastFlush: time.Now(),
		buf:       make([]byte, chunkSize),
		log:       opts.Logger,
	}
}

// readChunk reads once from the stream and reports whether it has ended.
func (r *reader) readChunk() (bool, error) {
	n, err := r.stream.Read(r.buf)
	if n > 0 {
		r.split.feed(r.buf[:n])
	}
	switch {
	case errors.Is(err, io.EOF):
		return true, nil
	case err != nil:
		return false, r.stream.ReadError(err)
	}
	return false, nil
}

// maybeFlush sends the batch once the flush interval has passed.
func (r *reader) maybeFlush() error {
	if r.split.pending() == 0 || time.Since(r.lastFlush) < r.interval {
		return nil
	}
	return r.flush()
}

func (r *reader) flush() error {
	batch := r.split.take()
	r.log.Debug("flushing lines", "count", len(batch))
	r.lastFlush = time.Now()
	if !r.sink.Send(event.NewLines{Lines: batch}) {
		return errSinkClosed
	}
	return nil
}

// finish delivers everything left at end of stream.
func (r *reader) finish() error {
	r.split.finish()
	if r.split.pending() > 0 {
		if err := r.flush(); err != nil {
			return err
		}
	}
	r.log.Debug("end of input")
	if !r.sink.Send(event.EndOfInput{}) {
		return errSinkClosed
	}
	return nil
}

// pollTimeout is the poll timeout in milliseconds: the time left until the
// next flush, or -1 when there is nothing to flush.
func (r *reader) pollTimeout() int {
	if r.split.pending() == 0 {
		return -1
	}
	rem := r.interval - time.Since(r.lastFlush)
	if rem <= 0 {
		return 0
	}
	return int((rem + time.Millisecond - 1) / time.Millisecond)
}
