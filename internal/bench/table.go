package bench

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// WriteTable renders results in the given format.
//
// The markdown format has one row per implementation and one column per
// capacity; each cell holds the mean nanoseconds per round and, when the
// micromap result for that capacity is present, the ratio to it (above
// 1.00x means micromap is faster). The text format prints one sorted,
// tab separated line per result.
func WriteTable(w io.Writer, results []Result, format string) error {
	switch format {
	case FormatMarkdown:
		return writeMarkdown(w, results)
	case FormatText:
		return writeText(w, results)
	default:
		return fmt.Errorf("bench: unknown format %q", format)
	}
}

type cell struct {
	impl     string
	capacity int
}

func writeMarkdown(w io.Writer, results []Result) error {
	var impls []string
	var capacities []int
	byCell := make(map[cell]Result, len(results))
	for _, r := range results {
		if !slices.Contains(impls, r.Impl) {
			impls = append(impls, r.Impl)
		}
		if !slices.Contains(capacities, r.Capacity) {
			capacities = append(capacities, r.Capacity)
		}
		byCell[cell{r.Impl, r.Capacity}] = r
	}
	slices.Sort(capacities)

	var sb strings.Builder
	sb.WriteString("| implementation |")
	for _, c := range capacities {
		sb.WriteString(" " + strconv.Itoa(c) + " |")
	}
	sb.WriteString("\n|---|")
	for range capacities {
		sb.WriteString("---:|")
	}
	sb.WriteByte('\n')
	for _, impl := range impls {
		sb.WriteString("| " + impl + " |")
		for _, c := range capacities {
			r, ok := byCell[cell{impl, c}]
			if !ok {
				sb.WriteString(" - |")
				continue
			}
			fmt.Fprintf(&sb, " %.1f", r.NsPerRound())
			if base, ok := byCell[cell{ImplMicromap, c}]; ok && base.Elapsed > 0 {
				fmt.Fprintf(&sb, " (%.2fx)", float64(r.Elapsed)/float64(base.Elapsed))
			}
			sb.WriteString(" |")
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeText(w io.Writer, results []Result) error {
	sorted := slices.Clone(results)
	slices.SortFunc(sorted, func(a, b Result) int {
		if c := strings.Compare(a.Impl, b.Impl); c != 0 {
			return c
		}
		return a.Capacity - b.Capacity
	})
	var sb strings.Builder
	for _, r := range sorted {
		fmt.Fprintf(&sb, "%s\t%d\t%d\n", r.Impl, r.Capacity, r.Elapsed.Nanoseconds())
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
