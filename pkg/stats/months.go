// Package stats holds the monthly histogram shape shared by the case, blog
// and event reporting endpoints.
package stats

// MonthBucket is one entry of a 12-bucket calendar histogram.
type MonthBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ZeroFill turns sparse month->count data (months numbered 1..12) into a
// full 12-bucket histogram, with zero counts for absent months.
func ZeroFill(counts map[int]int) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	for i, name := range monthNames {
		buckets[i] = MonthBucket{Label: name, Count: counts[i+1]}
	}
	return buckets
}
