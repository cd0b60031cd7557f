package model

import "time"

// TripPage is one page of the trip listing.
type TripPage struct {
	PageNum  int           `json:"pageNum"`
	PageSize int           `json:"pageSize"`
	AllPages int           `json:"allPages"`
	Trips    []TripSummary `json:"trips"`
}

// TripSummary is a trip with its countries and registered clients.
//
// Countries and Clients are always non-nil so they encode as [].
type TripSummary struct {
	ID          int              `json:"-"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	DateFrom    time.Time        `json:"dateFrom"`
	DateTo      time.Time        `json:"dateTo"`
	MaxPeople   int              `json:"maxPeople"`
	Countries   []CountrySummary `json:"countries"`
	Clients     []ClientSummary  `json:"clients"`
}

type CountrySummary struct {
	Name string `json:"name"`
}

type ClientSummary struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TripCountry and TripClient are rows of the per-page association queries.
type TripCountry struct {
	TripID int    `db:"id_trip"`
	Name   string `db:"name"`
}

type TripClient struct {
	TripID    int    `db:"id_trip"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}

// AllPages is ceil(total / pageSize); zero trips means zero pages.
func AllPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// NewTripSummary copies a trip into a summary with empty association lists.
func NewTripSummary(t Trip) TripSummary {
	return TripSummary{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		DateFrom:    t.DateFrom,
		DateTo:      t.DateTo,
		MaxPeople:   t.MaxPeople,
		Countries:   []CountrySummary{},
		Clients:     []ClientSummary{},
	}
}
