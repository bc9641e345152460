package debug

// Batch is a contiguous run of queued lines rendered with one draw call.
type Batch struct {
	Offset int
	Count  int
}

// PlanBatches splits n lines into ceil(n/size) batches in submission order.
// Every batch is full except possibly the last, which holds n mod size lines.
func PlanBatches(n, size int) []Batch {
	if n <= 0 || size <= 0 {
		return nil
	}
	batches := make([]Batch, 0, (n+size-1)/size)
	for offset := 0; offset < n; offset += size {
		batches = append(batches, Batch{Offset: offset, Count: min(size, n-offset)})
	}
	return batches
}

// PackLines appends the interleaved vertex data of lines to dst:
// start.xyz, color.xyz, end.xyz, color.xyz per line.
func PackLines(dst []float32, lines []Line) []float32 {
	for _, l := range lines {
		dst = append(dst,
			l.Start[0], l.Start[1], l.Start[2],
			l.Color[0], l.Color[1], l.Color[2],
			l.End[0], l.End[1], l.End[2],
			l.Color[0], l.Color[1], l.Color[2],
		)
	}
	return dst
}
