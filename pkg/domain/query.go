package domain

import (
	"strings"
	"time"
)

// SortBy is the ordering key requested by a client
type SortBy string

// sort keys
const (
	SortRandom     SortBy = "random"
	SortEngagement SortBy = "engagement"
	SortDate       SortBy = "date"
)

// SortOrder is the ordering direction
type SortOrder string

// sort orders
const (
	OrderDesc SortOrder = "desc"
	OrderAsc  SortOrder = "asc"
)

// Sort combines ordering key and direction
type Sort struct {
	By    SortBy
	Order SortOrder
}

// ParseSort makes Sort from raw query values, unknown values fall back to random/desc
func ParseSort(by, order string) Sort {
	res := Sort{By: SortRandom, Order: OrderDesc}
	switch SortBy(strings.ToLower(strings.TrimSpace(by))) {
	case SortEngagement:
		res.By = SortEngagement
	case SortDate:
		res.By = SortDate
	}
	if SortOrder(strings.ToLower(strings.TrimSpace(order))) == OrderAsc {
		res.Order = OrderAsc
	}
	return res
}

// WindowQuery selects stored topics newer than Since.
// Empty Platform and Topic mean no filter, zero Limit means unbounded.
type WindowQuery struct {
	Platform Platform
	Topic    TopicTag
	Since    time.Time
	Sort     Sort
	Limit    int
}

// Listing is a trending list served from cache or built from the store
type Listing struct {
	Topics          []Topic
	Timestamp       time.Time // when the underlying list was built
	Cached          bool
	CacheTTLMinutes int // remaining cache life, set for cached listings only
}

// CacheInfo describes a cache entry
type CacheInfo struct {
	Exists     bool `json:"exists"`
	TTLSeconds int  `json:"ttl_seconds"`
	TTLMinutes int  `json:"ttl_minutes"`
}

// SchedulerState is a phase of the refresh cycle
type SchedulerState string

// scheduler states
const (
	StateIdle       SchedulerState = "idle"
	StateFetching   SchedulerState = "fetching"
	StateCommitting SchedulerState = "committing"
)

// SchedulerStatus describes the refresh scheduler
type SchedulerStatus struct {
	Running      bool
	JobID        string
	JobName      string
	Interval     time.Duration
	NextRun      time.Time
	LastRun      time.Time
	LastUpdate   time.Time
	State        SchedulerState
	ActiveCycles int
}
