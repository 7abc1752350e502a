package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/least/internal/event"
	"github.com/TimelordUK/least/internal/source"
)

type chanSink struct {
	ch chan event.Event
}

func newChanSink() *chanSink {
	return &chanSink{ch: make(chan event.Event, 4096)}
}

func (s *chanSink) Send(ev event.Event) bool {
	s.ch <- ev
	return true
}

func (s *chanSink) next(t *testing.T) event.Event {
	t.Helper()
	select {
	case ev := <-s.ch:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reader event")
		return nil
	}
}

// collect gathers lines until the terminal event and returns it.
func (s *chanSink) collect(t *testing.T) ([]string, event.Event) {
	t.Helper()
	var lines []string
	for {
		switch ev := s.next(t).(type) {
		case event.NewLines:
			require.NotEmpty(t, ev.Lines, "empty batches must not be sent")
			lines = append(lines, ev.Lines...)
		default:
			return lines, ev
		}
	}
}

func testOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20000; i++ {
		fmt.Fprintf(&b, "line %d\twith tab\n", i)
	}
	b.WriteString("trailing")
	path := writeFile(t, b.String())

	sink := newChanSink()
	task := Spawn(source.File(path), sink, testOptions())

	lines, last := sink.collect(t)
	assert.Equal(t, event.EndOfInput{}, last)
	require.Len(t, lines, 20001)
	assert.Equal(t, "line 0  with tab", lines[0])
	assert.Equal(t, "line 19999  with tab", lines[19999])
	assert.Equal(t, "trailing", lines[20000])

	assert.Equal(t, event.ReaderTerminationObserved{}, sink.next(t))
	assert.NoError(t, task.Wait())
}

func TestReadEmptyFile(t *testing.T) {
	path := writeFile(t, "")

	sink := newChanSink()
	task := Spawn(source.File(path), sink, testOptions())

	lines, last := sink.collect(t)
	assert.Empty(t, lines)
	assert.Equal(t, event.EndOfInput{}, last)
	assert.Equal(t, event.ReaderTerminationObserved{}, sink.next(t))
	assert.NoError(t, task.Wait())
}

func TestReadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")

	sink := newChanSink()
	task := Spawn(source.File(path), sink, testOptions())

	failed, ok := sink.next(t).(event.ReaderFailed)
	require.True(t, ok)
	assert.True(t, source.IsOp(failed.Cause, source.OpOpen))

	assert.Equal(t, event.ReaderTerminationObserved{}, sink.next(t))
	err := task.Wait()
	assert.Equal(t, failed.Cause, err)
}

func TestReadDirectory(t *testing.T) {
	sink := newChanSink()
	task := Spawn(source.File(t.TempDir()), sink, testOptions())

	failed, ok := sink.next(t).(event.ReaderFailed)
	require.True(t, ok)
	assert.ErrorIs(t, failed.Cause, source.ErrIsDirectory)
	assert.ErrorIs(t, task.Wait(), source.ErrIsDirectory)
}

func startPipeReader(t *testing.T, sink event.Sink) (*os.File, chan error) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	done := make(chan error, 1)
	go func() {
		stream := source.NewStream("pipe", r)
		defer stream.Close()
		rd := newReader(stream, sink, testOptions().withDefaults())
		done <- rd.loop()
	}()
	return w, done
}

func TestPipeFlushesWhileIdle(t *testing.T) {
	sink := newChanSink()
	w, done := startPipeReader(t, sink)

	_, err := w.WriteString("first\nsec")
	require.NoError(t, err)

	// The writer stays open: the completed line must still arrive.
	assert.Equal(t, event.NewLines{Lines: event.LineBatch{"first"}}, sink.next(t))

	_, err = w.WriteString("ond\n")
	require.NoError(t, err)
	assert.Equal(t, event.NewLines{Lines: event.LineBatch{"second"}}, sink.next(t))

	_, err = w.WriteString("tail")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, event.NewLines{Lines: event.LineBatch{"tail"}}, sink.next(t))
	assert.Equal(t, event.EndOfInput{}, sink.next(t))
	assert.NoError(t, <-done)
}

func TestPipeBatchesBursts(t *testing.T) {
	sink := newChanSink()
	w, done := startPipeReader(t, sink)

	var b strings.Builder
	for i := 0; i < 5000; i++ {
		fmt.Fprintf(&b, "%d\n", i)
	}
	go func() {
		_, _ = w.WriteString(b.String())
		_ = w.Close()
	}()

	lines, last := sink.collect(t)
	assert.Equal(t, event.EndOfInput{}, last)
	require.Len(t, lines, 5000)
	for i, line := range lines {
		require.Equal(t, fmt.Sprint(i), line)
	}
	assert.NoError(t, <-done)
}

type closedSink struct{}

func (closedSink) Send(event.Event) bool { return false }

func TestReaderStopsWhenSinkClosed(t *testing.T) {
	path := writeFile(t, "a\nb\n")
	task := Spawn(source.File(path), closedSink{}, testOptions())

	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("reader did not stop")
	}
	assert.NoError(t, task.Wait())
}

func TestPollTimeout(t *testing.T) {
	r := newReader(nil, closedSink{}, testOptions().withDefaults())
	assert.Equal(t, -1, r.pollTimeout())

	r.split.feed([]byte("x\n"))
	r.lastFlush = time.Now()
	timeout := r.pollTimeout()
	assert.Greater(t, timeout, 0)
	assert.LessOrEqual(t, timeout, int(FlushInterval/time.Millisecond))

	r.lastFlush = time.Now().Add(-time.Second)
	assert.Equal(t, 0, r.pollTimeout())
}
