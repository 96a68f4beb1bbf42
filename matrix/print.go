package matrix

import (
	"fmt"
	"io"
	"strings"
)

// MaxPrint is the widest matrix whose cells Fprint writes out.
const MaxPrint = 16

// Fprint writes a human readable dump of m to w. It is meant for debugging
// and is not a stable format.
func (m *Matrix) Fprint(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "rows = %d, columns = %d\n", m.rows, m.cols); err != nil {
		return err
	}
	if m.cols > MaxPrint {
		_, err := fmt.Fprintln(w, "matrix too wide to print")
		return err
	}

	for _, row := range m.data {
		var b strings.Builder
		b.WriteString("|")
		for _, v := range row {
			fmt.Fprintf(&b, " %02x", v)
		}
		b.WriteString(" |\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func (m *Matrix) String() string {
	var b strings.Builder
	_ = m.Fprint(&b)
	return b.String()
}
