package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// csvOptions configures the streaming delimited-text parser.
type csvOptions struct {
	Delimiter rune            // 0 = auto-detect from the header line
	HeaderCh  chan<- []string // optional: receives the header row
}

// streamRows reads delimited text and sends data rows to a channel.
// The input is decoded as UTF-8 with a leading byte-order mark
// tolerated. The caller must consume the returned row channel; both
// channels are closed when processing completes.
func streamRows(ctx context.Context, r io.Reader, opts csvOptions) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		decoded := bufio.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))

		delim := opts.Delimiter
		if delim == 0 {
			head, err := decoded.Peek(4096)
			if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
				errCh <- eris.Wrap(err, "dataset: peek header line")
				return
			}
			delim = detectDelimiter(firstLine(head))
		}

		reader := csv.NewReader(decoded)
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // allow variable fields

		first := true
		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "dataset: context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "dataset: read row")
				return
			}

			if first {
				first = false
				if opts.HeaderCh != nil {
					select {
					case opts.HeaderCh <- record:
					case <-ctx.Done():
						errCh <- eris.Wrap(ctx.Err(), "dataset: context cancelled sending header")
						return
					}
				}
				continue
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "dataset: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// firstLine returns the bytes up to the first newline as a string.
func firstLine(b []byte) string {
	for i, c := range b {
		if c == '\n' || c == '\r' {
			return string(b[:i])
		}
	}
	return string(b)
}
