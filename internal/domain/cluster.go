package domain

// Bucket is the set of quotes sharing one grouping key, in insertion order.
type Bucket struct {
	Key    string
	Quotes []Quote
}

// Cluster partitions quotes into buckets by grouping key. Buckets are
// created lazily in first-seen order and quotes keep their input order
// within a bucket, so the output is deterministic for a deterministic
// input. There is no merging, no similarity threshold and no bucket cap;
// a single huge or single-quote bucket is legal output.
func Cluster(quotes []Quote) []Bucket {
	var buckets []Bucket
	index := make(map[string]int)

	for _, q := range quotes {
		key := GroupKey(q.Text)
		i, seen := index[key]
		if !seen {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Key: key})
		}
		buckets[i].Quotes = append(buckets[i].Quotes, q)
	}

	return buckets
}
