package lumber

import (
	"bytes"
)

// Writer adapts a Logger to io.WriteCloser so multi-line output, such as the
// rendered coverage table, can be streamed into the log one entry per line.
// Close flushes any trailing line that did not end with a newline.
type Writer struct {
	// Log receives the entries. It must be set before the first Write.
	Log     Logger
	pending bytes.Buffer
}

// NewWriter returns a Writer posting each written line to the logger.
func NewWriter(log Logger) *Writer {
	return &Writer{Log: log}
}

// Write splits the input on newlines and logs every complete line. A partial
// line at the end is held back until the next Write or Close completes it.
func (w *Writer) Write(bs []byte) (n int, err error) {
	n = len(bs)
	for len(bs) > 0 {
		bs = w.consumeLine(bs)
	}
	return n, nil
}

// consumeLine logs the first line of the input and returns what follows it.
// Input without a newline is buffered whole.
func (w *Writer) consumeLine(line []byte) (remaining []byte) {
	idx := bytes.IndexByte(line, '\n')
	if idx < 0 {
		w.pending.Write(line)
		return nil
	}

	line, remaining = line[:idx], line[idx+1:]
	if w.pending.Len() == 0 {
		w.log(line)
		return remaining
	}

	w.pending.Write(line)
	// A blank line inside the stream still becomes an entry, so "foo\n\nbar"
	// keeps its spacing in the log.
	w.flush(true)
	return remaining
}

// Close flushes the buffered remainder, if any.
func (w *Writer) Close() error {
	return w.Sync()
}

// Sync flushes buffered data as a log entry even without a trailing newline.
// An empty buffer is not flushed, so input ending in a newline does not
// produce a stray empty entry.
func (w *Writer) Sync() error {
	w.flush(false)
	return nil
}

func (w *Writer) flush(allowEmpty bool) {
	if allowEmpty || w.pending.Len() > 0 {
		w.log(w.pending.Bytes())
	}
	w.pending.Reset()
}

func (w *Writer) log(b []byte) {
	w.Log.Debugf("%s", string(b))
}
