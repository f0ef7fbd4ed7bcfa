package naturals

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
)

// WriteSequence writes the integers 1..n to w, each followed by a single
// space. Nothing is written for n == 0. Output is buffered and streamed, so
// large n never materialises the whole sequence in memory.
//
// The context is checked every SequenceFlushInterval numbers; on
// cancellation the numbers written so far are flushed and ctx.Err() is
// returned.
func WriteSequence(ctx context.Context, w io.Writer, n int64) error {
	if err := Validate("n", n); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 24)
	for i := int64(1); i <= n; i++ {
		if i%SequenceFlushInterval == 0 {
			if err := ctx.Err(); err != nil {
				// The cancellation outranks a flush failure.
				_ = bw.Flush()
				return err
			}
		}
		buf = strconv.AppendInt(buf[:0], i, 10)
		buf = append(buf, ' ')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatSequence returns the text WriteSequence would write for n.
// Negative n yields the empty string.
func FormatSequence(n int64) string {
	var sb strings.Builder
	if err := WriteSequence(context.Background(), &sb, n); err != nil {
		return ""
	}
	return sb.String()
}
