package model

import "sort"

// SeriesDocument maps ISO calendar dates (YYYY-MM-DD) to the observations
// recorded on that date, in append order. Appending never removes or reorders
// existing dates or observations.
type SeriesDocument map[string][]Observation

// Dates returns the document's date keys in ascending chronological order.
// Keys are zero-padded ISO dates, so lexicographic order is chronological.
func (d SeriesDocument) Dates() []string {
	dates := make([]string, 0, len(d))
	for date := range d {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Len returns the total number of observations across all dates.
func (d SeriesDocument) Len() int {
	n := 0
	for _, obs := range d {
		n += len(obs)
	}
	return n
}
