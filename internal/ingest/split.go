package ingest

import (
	"bytes"

	"github.com/TimelordUK/least/internal/event"
	"github.com/TimelordUK/least/internal/textutil"
)

// splitter cuts a byte stream into lines. Bytes after the last terminator
// are held until a later chunk completes them or the stream ends.
type splitter struct {
	partial  []byte
	batch    event.LineBatch
	tabWidth int
}

func (s *splitter) feed(chunk []byte) {
	for {
		i := bytes.IndexByte(chunk, '\n')
		if i < 0 {
			break
		}
		if len(s.partial) > 0 {
			s.partial = append(s.partial, chunk[:i]...)
			s.push(bytes.TrimSuffix(s.partial, []byte{'\r'}))
			s.partial = s.partial[:0]
		} else {
			s.push(bytes.TrimSuffix(chunk[:i], []byte{'\r'}))
		}
		chunk = chunk[i+1:]
	}
	s.partial = append(s.partial, chunk...)
}

// finish completes a trailing unterminated line, if any. A final \r is
// kept since no \n follows it.
func (s *splitter) finish() {
	if len(s.partial) > 0 {
		s.push(s.partial)
		s.partial = nil
	}
}

func (s *splitter) push(line []byte) {
	s.batch = append(s.batch, textutil.ExpandTabs(string(line), s.tabWidth))
}

func (s *splitter) pending() int {
	return len(s.batch)
}

// take hands over the current batch and starts a new one.
func (s *splitter) take() event.LineBatch {
	batch := s.batch
	s.batch = nil
	return batch
}
