package mergereader

import (
	"io"
	"sync"
)

// Reader interleaves the data of several readers in the order it arrives.
// It returns io.EOF once every source has been drained.
//
// Data from a single source is never reordered, but there is no ordering
// between sources.
type Reader struct {
	ch      <-chan chunk
	pending []byte
	err     error
}

const chunkSize = 4096

type chunk struct {
	data []byte
	err  error
}

// New returns a Reader that merges the output of sources. A goroutine is
// started for each source and runs until that source returns an error or
// io.EOF, so every source must eventually be closed or drained.
func New(sources ...io.Reader) *Reader {
	ch := make(chan chunk)

	var wg sync.WaitGroup
	wg.Add(len(sources))
	for _, source := range sources {
		go func() {
			defer wg.Done()
			drain(source, ch)
		}()
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	return &Reader{ch: ch}
}

// Read reads merged data into p. Data that does not fit in p is held for
// the next call. The first read error from any source is returned once the
// data that preceded it has been consumed.
func (r *Reader) Read(p []byte) (n int, err error) {
	for len(r.pending) == 0 {
		if r.err != nil {
			err, r.err = r.err, nil
			return 0, err
		}
		c, ok := <-r.ch
		if !ok {
			return 0, io.EOF
		}
		r.pending, r.err = c.data, c.err
	}

	n = copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

func drain(source io.Reader, ch chan<- chunk) {
	buf := make([]byte, chunkSize)
	for {
		n, err := source.Read(buf)
		var c chunk
		if n > 0 {
			c.data = append([]byte(nil), buf[:n]...)
		}
		if err != nil && err != io.EOF {
			c.err = err
		}
		if len(c.data) > 0 || c.err != nil {
			ch <- c
		}
		if err != nil {
			return
		}
	}
}
