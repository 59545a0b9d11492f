package domain

// Geographic coordinates resolved from a place name.
// Only lives for the duration of one submission.
type Location struct {
	Lat float64
	Lon float64
}
