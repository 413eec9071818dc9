package importers

// DefaultBatchSize is how many records go into one insert request.
const DefaultBatchSize = 100

// Batch is a contiguous slice of the input submitted as one insert request.
type Batch struct {
	Number  int // 1-based position among all batches
	Offset  int // 0-based index of the first record in the input
	Records []ImportRecord
}

// FirstIndex is the 1-based input index of the first record.
func (b Batch) FirstIndex() int {
	return b.Offset + 1
}

// LastIndex is the 1-based input index of the last record (inclusive).
func (b Batch) LastIndex() int {
	return b.Offset + len(b.Records)
}

func (b Batch) Size() int {
	return len(b.Records)
}

// Partition splits records into ceil(len/size) non-overlapping batches in
// input order. A non-positive size falls back to DefaultBatchSize.
func Partition(records []ImportRecord, size int) []Batch {
	if size <= 0 {
		size = DefaultBatchSize
	}

	batches := make([]Batch, 0, BatchCount(len(records), size))
	for offset := 0; offset < len(records); offset += size {
		end := min(offset+size, len(records))
		batches = append(batches, Batch{
			Number:  len(batches) + 1,
			Offset:  offset,
			Records: records[offset:end],
		})
	}
	return batches
}

// BatchCount returns ceil(n/size).
func BatchCount(n, size int) int {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
