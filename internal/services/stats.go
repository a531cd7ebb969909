package services

import (
	"math"
	"sort"

	"github.com/jobtracker-app/jobtracker/internal/models"
)

// FilterAll selects every record regardless of status.
const FilterAll = "all"

// ValidFilter reports whether filter is "all" or one of the pipeline stages.
func ValidFilter(filter string) bool {
	return filter == FilterAll || models.Status(filter).Valid()
}

// Filtered returns the records matching the status filter, preserving the
// original relative order. Pure function.
func Filtered(apps []models.Application, filter string) []models.Application {
	if filter == FilterAll {
		return apps
	}
	var out []models.Application
	for _, a := range apps {
		if a.Status == models.Status(filter) {
			out = append(out, a)
		}
	}
	return out
}

// Sorted returns a copy ordered by date descending. The sort is stable: ties
// keep their prior relative order. Dates are YYYY-MM-DD, so the reverse
// lexicographic compare is the reverse chronological one.
func Sorted(apps []models.Application) []models.Application {
	out := make([]models.Application, len(apps))
	copy(out, apps)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// Stats are the aggregate counters derived from the full collection.
type Stats struct {
	Total         int `json:"total"`
	Interviews    int `json:"interviews"`
	Offers        int `json:"offers"`
	InterviewRate int `json:"interview_rate"` // percent, rounded
}

// ComputeStats counts the collection. The interview rate is rounded to the
// nearest integer percent, 0 on an empty collection.
func ComputeStats(apps []models.Application) Stats {
	st := Stats{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case models.StatusInterview:
			st.Interviews++
		case models.StatusOffer:
			st.Offers++
		}
	}
	if st.Total > 0 {
		st.InterviewRate = int(math.Round(float64(st.Interviews) / float64(st.Total) * 100))
	}
	return st
}
