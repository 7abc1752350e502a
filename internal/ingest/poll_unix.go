//go:build unix

package ingest

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

const readable = unix.POLLIN | unix.POLLHUP | unix.POLLERR

// loop waits on readiness of the stream descriptor so that completed lines
// are flushed on time even while the source is idle.
func (r *reader) loop() error {
	fds := []unix.PollFd{{Fd: int32(r.stream.Fd()), Events: unix.POLLIN}}
	for {
		fds[0].Revents = 0
		n, err := unix.Poll(fds, r.pollTimeout())
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return r.stream.ReadError(fmt.Errorf("poll: %w", err))
		}

		if n > 0 {
			if fds[0].Revents&unix.POLLNVAL != 0 {
				return r.stream.ReadError(errors.New("poll: invalid descriptor"))
			}
			if fds[0].Revents&readable != 0 {
				eof, err := r.readChunk()
				if err != nil {
					return err
				}
				if eof {
					return r.finish()
				}
			}
		}

		if err := r.maybeFlush(); err != nil {
			return err
		}
	}
}
