package model

// FeatureVector holds the per-pair numeric feature columns produced by the
// feature extractor and consumed by the classifier. Columns are ordered
// and named so a model trained with one feature set can detect a mismatch
// against a feature set computed later.
type FeatureVector struct {
	Columns []string
	rows    map[PairKey][]float64
}

// NewFeatureVector creates an empty vector with the given column names.
func NewFeatureVector(columns []string) *FeatureVector {
	return &FeatureVector{
		Columns: columns,
		rows:    make(map[PairKey][]float64),
	}
}

// Set stores the feature row for a pair. len(values) must equal len(Columns).
func (fv *FeatureVector) Set(k PairKey, values []float64) {
	fv.rows[k] = values
}

// Get returns the feature row for a pair and whether it was present.
func (fv *FeatureVector) Get(k PairKey) ([]float64, bool) {
	v, ok := fv.rows[k]
	return v, ok
}

// Keys returns the pair keys present in this vector, in no particular
// order; callers that need determinism should sort the result.
func (fv *FeatureVector) Keys() []PairKey {
	res := make([]PairKey, 0, len(fv.rows))
	for k := range fv.rows {
		res = append(res, k)
	}
	return res
}

// Len returns the number of rows.
func (fv *FeatureVector) Len() int {
	return len(fv.rows)
}

// Width returns the number of feature columns.
func (fv *FeatureVector) Width() int {
	return len(fv.Columns)
}

// Pad extends every row to `to` columns, appending sentinel for any column
// beyond what this vector currently has. Used when a trained model expects
// more columns than the current feature set provides (AddMissingColumns
// in the original implementation).
func (fv *FeatureVector) Pad(to int, sentinel float64) {
	if fv.Width() >= to {
		return
	}
	extra := to - fv.Width()
	for k, v := range fv.rows {
		padded := make([]float64, to)
		copy(padded, v)
		for i := fv.Width(); i < to; i++ {
			padded[i] = sentinel
		}
		fv.rows[k] = padded
	}
	for i := 0; i < extra; i++ {
		fv.Columns = append(fv.Columns, "unknown")
	}
}

// Column extracts a single named column across all rows, in the order
// given by keys. Rows missing from the vector are skipped.
func (fv *FeatureVector) Column(name string, keys []PairKey) []float64 {
	idx := -1
	for i, c := range fv.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}
	res := make([]float64, 0, len(keys))
	for _, k := range keys {
		if row, ok := fv.rows[k]; ok && idx < len(row) {
			res = append(res, row[idx])
		}
	}
	return res
}
