// Package model holds the entities stored by the repositories, the read
// projections returned by the API and the request payloads handlers bind.
package model

import "time"

// Trip is a scheduled journey clients can register for.
type Trip struct {
	ID          int       `db:"id_trip" json:"idTrip"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	DateFrom    time.Time `db:"date_from" json:"dateFrom"`
	DateTo      time.Time `db:"date_to" json:"dateTo"`
	MaxPeople   int       `db:"max_people" json:"maxPeople"`
}

// OpenAt reports whether registrations are still accepted at now:
// the trip must start strictly after it.
func (t *Trip) OpenAt(now time.Time) bool {
	return t.DateFrom.After(now)
}

// Country is a destination visited by trips.
type Country struct {
	ID   int    `db:"id_country" json:"idCountry"`
	Name string `db:"name" json:"name"`
}

// Client is a person who registers for trips. Pesel is unique.
type Client struct {
	ID        int    `db:"id_client" json:"idClient"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Email     string `db:"email" json:"email"`
	Telephone string `db:"telephone" json:"telephone"`
	Pesel     string `db:"pesel" json:"pesel"`
}

// ClientTrip is a registration of a client for a trip.
type ClientTrip struct {
	ClientID     int        `db:"id_client" json:"idClient"`
	TripID       int        `db:"id_trip" json:"idTrip"`
	RegisteredAt time.Time  `db:"registered_at" json:"registeredAt"`
	PaymentDate  *time.Time `db:"payment_date" json:"paymentDate"`
}
