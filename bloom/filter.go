// Package bloom provides approximate set membership for link strings.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter sized for an expected number of links.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records s in the filter.
func (f *Filter) Add(s string) {
	f.f.AddString(s)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
