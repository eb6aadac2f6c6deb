package tensor

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Head/tail sizes used by Content when a tensor is too large to print whole.
const (
	printRows = 10
	printCols = 6
)

// Summary returns a header line describing the tensor followed by Content.
func (t *Tensor[T, B]) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", t, t.layout)
	if t.DType().IsFloat() {
		if s, err := Stats(t); err == nil {
			fmt.Fprintf(&b, "mean:%g std:%g nan:%d\n", s.Mean(), s.Std(), t.NanCount())
		}
	}
	b.WriteString(t.Content())
	return b.String()
}

// Content renders the tensor as a table, showing only the first and last
// rows and columns of large tensors.
func (t *Tensor[T, B]) Content() string {
	return t.table(printRows, printCols)
}

// FullContent renders every element.
func (t *Tensor[T, B]) FullContent() string {
	return t.table(0, 0)
}

// table renders rows of the last axis; leading axes form the row label.
// headRows/headCols of zero disable truncation.
func (t *Tensor[T, B]) table(headRows, headCols int) string {
	if t.Rank() == 0 {
		return t.format(t.Item()) + "\n"
	}
	cols := t.Dim(-1)
	rows := t.Size() / cols
	lead := t.Shape().Dims()[:t.Rank()-1]

	rowIdx := pick(rows, headRows)
	colIdx := pick(cols, headCols)

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 1, ' ', tabwriter.AlignRight)
	for _, r := range rowIdx {
		if r < 0 {
			fmt.Fprintln(w, "...\t")
			continue
		}
		index := make([]int, t.Rank())
		rem := r
		for i := len(lead) - 1; i >= 0; i-- {
			index[i] = rem % lead[i]
			rem /= lead[i]
		}
		fmt.Fprint(w, rowLabel(index[:len(lead)]), "\t")
		for _, c := range colIdx {
			if c < 0 {
				fmt.Fprint(w, "...\t")
				continue
			}
			index[len(lead)] = c
			fmt.Fprint(w, t.format(t.Get(index...)), "\t")
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()
	return b.String()
}

// pick returns the indices to print out of n; -1 marks an elided run.
func pick(n, head int) []int {
	if head <= 0 || n <= 2*head {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, 0, 2*head+1)
	for i := 0; i < head; i++ {
		idx = append(idx, i)
	}
	idx = append(idx, -1)
	for i := n - head; i < n; i++ {
		idx = append(idx, i)
	}
	return idx
}

func rowLabel(index []int) string {
	parts := make([]string, 0, len(index)+1)
	for _, i := range index {
		parts = append(parts, strconv.Itoa(i))
	}
	parts = append(parts, ":")
	return "[" + strings.Join(parts, ",") + "]"
}

func (t *Tensor[T, B]) format(v T) string {
	if t.DType().IsInteger() {
		return strconv.FormatInt(int64(v), 10)
	}
	bits := 64
	if t.DType() == Float {
		bits = 32
	}
	return strconv.FormatFloat(float64(v), 'g', 6, bits)
}
