//go:build !unix

package ingest

// loop reads with plain blocking reads where readiness polling is not
// available. The flush timer is only checked between reads.
func (r *reader) loop() error {
	for {
		eof, err := r.readChunk()
		if err != nil {
			return err
		}
		if eof {
			return r.finish()
		}
		if err := r.maybeFlush(); err != nil {
			return err
		}
	}
}
