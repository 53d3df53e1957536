package mergereader_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/leafbridge/leafbridge-hello/internal/mergereader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergesPipes(t *testing.T) {
	r1, w1, err1 := os.Pipe()
	r2, w2, err2 := os.Pipe()
	require.NoError(t, errors.Join(err1, err2))

	write := func(w *os.File, line string) {
		for range 10 {
			w.WriteString(line)
		}
		w.Close()
	}
	go write(w1, "stdout line\n")
	go write(w2, "stderr line\n")

	data, err := io.ReadAll(mergereader.New(r1, r2))
	require.NoError(t, err)

	assert.Equal(t, 10, strings.Count(string(data), "stdout line\n"))
	assert.Equal(t, 10, strings.Count(string(data), "stderr line\n"))
}

func TestSmallReadsKeepData(t *testing.T) {
	source := bytes.Repeat([]byte("0123456789"), 1000)

	merged := mergereader.New(bytes.NewReader(source))
	data, err := io.ReadAll(iotest.OneByteReader(merged))
	require.NoError(t, err)
	assert.Equal(t, source, data)
}

func TestSourceError(t *testing.T) {
	failure := errors.New("broken pipe")
	merged := mergereader.New(io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(failure)))

	data, err := io.ReadAll(merged)
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, "partial", string(data))
}

func TestNoSources(t *testing.T) {
	data, err := io.ReadAll(mergereader.New())
	require.NoError(t, err)
	assert.Empty(t, data)
}
