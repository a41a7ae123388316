package testutil

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

const (
	line64Bytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ012345ABCDEFGHIJKLMNOPQRSTUVWXYZ01234"
	divLine     = "---------------------------------------------------------|"
	linesPerKiB = 15
)

// GenTestData writes sizeKB KiB of deterministic text to w. Each KiB is a
// divider line carrying its index followed by 15 copies of a 63-character
// line, every line newline terminated.
func GenTestData(w io.Writer, sizeKB int) error {
	bw := bufio.NewWriter(w)
	for kb := 0; kb < sizeKB; kb++ {
		if _, err := fmt.Fprintf(bw, "|%4d%s\n", kb, divLine); err != nil {
			return err
		}
		for i := 0; i < linesPerKiB; i++ {
			if _, err := bw.WriteString(line64Bytes + "\n"); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// TestData returns GenTestData output as a byte slice.
func TestData(sizeKB int) []byte {
	var buf bytes.Buffer
	buf.Grow(sizeKB * 1024)
	if err := GenTestData(&buf, sizeKB); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
