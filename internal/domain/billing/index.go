package billing

// BilledIndex answers "has this transaction already been billed?" in O(1).
// It is rebuilt fresh from the patient's bill history on every reconciliation
// run; there is no cache to invalidate.
type BilledIndex map[string]struct{}

// BuildBilledIndex scans every line of every existing bill and records its
// dedup key.
func BuildBilledIndex(items []*BilledItem) BilledIndex {
	idx := make(BilledIndex, len(items))
	for _, it := range items {
		idx[it.Key()] = struct{}{}
	}
	return idx
}

func (idx BilledIndex) IsBilled(key string) bool {
	_, ok := idx[key]
	return ok
}
