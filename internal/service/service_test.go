package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/trip-booking/internal/database/dbtest"
	"github.com/deppfellow/trip-booking/internal/errs"
	"github.com/deppfellow/trip-booking/internal/model"
	"github.com/deppfellow/trip-booking/internal/repository"
)

var fixedNow = time.Date(2030, time.May, 1, 12, 0, 0, 0, time.UTC)

func newRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	repos, err := repository.FromDatabase(dbtest.NewSQLite(t))
	if err != nil {
		t.Fatalf("FromDatabase: %v", err)
	}
	return repos
}

func newTripService(repos *repository.Repositories) *TripService {
	s := NewTripService(repos)
	s.now = func() time.Time { return fixedNow }
	return s
}

func seedTrip(t *testing.T, repos *repository.Repositories, name string, from time.Time) *model.Trip {
	t.Helper()
	trip := &model.Trip{
		Name:        name,
		Description: "about " + name,
		DateFrom:    from,
		DateTo:      from.Add(5 * 24 * time.Hour),
		MaxPeople:   12,
	}
	if err := repos.Trip.Create(context.Background(), trip); err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return trip
}

func assignPayload(tripID int, pesel string) *model.AssignClientPayload {
	return &model.AssignClientPayload{
		TripID: tripID,
		Client: model.ClientPayload{
			FirstName: "Jan",
			LastName:  "Kowalski",
			Email:     "jan@example.com",
			Telephone: "+48 111 222 333",
			Pesel:     pesel,
		},
	}
}

func requireHTTPError(t *testing.T, err error, status int, code, message string) {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T: %v", err, err)
	}
	if httpErr.Status != status || httpErr.Code != code || httpErr.Message != message {
		t.Fatalf("got %d %s %q, want %d %s %q", httpErr.Status, httpErr.Code, httpErr.Message, status, code, message)
	}
}

func TestListTrips_PaginationProperty(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	svc := newTripService(repos)

	const total = 7
	for i := 0; i < total; i++ {
		seedTrip(t, repos, fmt.Sprintf("trip-%d", i), fixedNow.Add(time.Duration(i+1)*24*time.Hour))
	}

	for _, pageSize := range []int{1, 2, 3, 7, 10} {
		wantPages := (total + pageSize - 1) / pageSize
		seen := 0
		for page := 1; page <= wantPages+1; page++ {
			result, err := svc.ListTrips(ctx, page, pageSize)
			if err != nil {
				t.Fatalf("ListTrips(%d, %d): %v", page, pageSize, err)
			}
			if result.AllPages != wantPages {
				t.Errorf("pageSize %d: allPages = %d, want %d", pageSize, result.AllPages, wantPages)
			}
			if result.PageNum != page || result.PageSize != pageSize {
				t.Errorf("echoed page/pageSize = %d/%d", result.PageNum, result.PageSize)
			}
			if len(result.Trips) > pageSize {
				t.Errorf("page %d has %d trips, more than %d", page, len(result.Trips), pageSize)
			}
			if result.Trips == nil {
				t.Errorf("trips slice is nil on page %d", page)
			}
			seen += len(result.Trips)
		}
		if seen != total {
			t.Errorf("pageSize %d: saw %d trips over all pages, want %d", pageSize, seen, total)
		}
	}
}

func TestListTrips_OrderAndAssociations(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	svc := newTripService(repos)

	older := seedTrip(t, repos, "older", fixedNow.Add(24*time.Hour))
	newer := seedTrip(t, repos, "newer", fixedNow.Add(48*time.Hour))
	if err := repos.Trip.AddCountry(ctx, older.ID, "Italy"); err != nil {
		t.Fatalf("add country: %v", err)
	}
	if _, err := svc.AssignClient(ctx, assignPayload(older.ID, "12345678901")); err != nil {
		t.Fatalf("assign: %v", err)
	}

	result, err := svc.ListTrips(ctx, 1, 10)
	if err != nil {
		t.Fatalf("ListTrips: %v", err)
	}
	if len(result.Trips) != 2 || result.Trips[0].Name != newer.Name || result.Trips[1].Name != older.Name {
		t.Fatalf("trips = %+v, want newer before older", result.Trips)
	}

	first := result.Trips[0]
	if first.Countries == nil || first.Clients == nil || len(first.Countries) != 0 || len(first.Clients) != 0 {
		t.Errorf("trip without associations = %+v, want empty non-nil lists", first)
	}

	second := result.Trips[1]
	if len(second.Countries) != 1 || second.Countries[0].Name != "Italy" {
		t.Errorf("countries = %+v", second.Countries)
	}
	if len(second.Clients) != 1 || second.Clients[0].FirstName != "Jan" || second.Clients[0].LastName != "Kowalski" {
		t.Errorf("clients = %+v", second.Clients)
	}
}

func TestListTrips_Empty(t *testing.T) {
	result, err := newTripService(newRepos(t)).ListTrips(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("ListTrips: %v", err)
	}
	if result.AllPages != 0 || len(result.Trips) != 0 || result.Trips == nil {
		t.Errorf("result = %+v, want zero pages and empty trips", result)
	}
}

func TestAssignClient_NewPeselCreatesClientAndRegistration(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	svc := newTripService(repos)
	trip := seedTrip(t, repos, "future", fixedNow.Add(time.Hour))

	paid := fixedNow.Add(-time.Hour)
	payload := assignPayload(trip.ID, "90010100001")
	payload.PaymentDate = &paid

	registration, err := svc.AssignClient(ctx, payload)
	if err != nil {
		t.Fatalf("AssignClient: %v", err)
	}
	if registration.TripID != trip.ID || registration.ClientID == 0 {
		t.Errorf("registration = %+v", registration)
	}
	if !registration.RegisteredAt.Equal(fixedNow) {
		t.Errorf("registeredAt = %v, want request time %v", registration.RegisteredAt, fixedNow)
	}
	if registration.PaymentDate == nil || !registration.PaymentDate.Equal(paid) {
		t.Errorf("paymentDate = %v, want %v", registration.PaymentDate, paid)
	}

	client, err := repos.Client.GetByPesel(ctx, "90010100001")
	if err != nil {
		t.Fatalf("client not created: %v", err)
	}
	if client.ID != registration.ClientID || client.Email != "jan@example.com" {
		t.Errorf("client = %+v", client)
	}
	n, err := repos.Client.CountTrips(ctx, client.ID)
	if err != nil || n != 1 {
		t.Errorf("registrations = %d, %v; want 1", n, err)
	}
}

func TestAssignClient_ExistingClientIsReused(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	svc := newTripService(repos)
	first := seedTrip(t, repos, "first", fixedNow.Add(time.Hour))
	second := seedTrip(t, repos, "second", fixedNow.Add(2*time.Hour))

	r1, err := svc.AssignClient(ctx, assignPayload(first.ID, "90010100002"))
	if err != nil {
		t.Fatalf("first assign: %v", err)
	}

	payload := assignPayload(second.ID, "90010100002")
	payload.Client.FirstName = "Someone Else"
	r2, err := svc.AssignClient(ctx, payload)
	if err != nil {
		t.Fatalf("second assign: %v", err)
	}
	if r1.ClientID != r2.ClientID {
		t.Errorf("client ids differ: %d vs %d", r1.ClientID, r2.ClientID)
	}

	client, _ := repos.Client.GetByID(ctx, r1.ClientID)
	if client.FirstName != "Jan" {
		t.Errorf("existing client was modified: %+v", client)
	}
}

func TestAssignClient_Duplicate(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	svc := newTripService(repos)
	trip := seedTrip(t, repos, "dup", fixedNow.Add(time.Hour))

	if _, err := svc.AssignClient(ctx, assignPayload(trip.ID, "90010100003")); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	_, err := svc.AssignClient(ctx, assignPayload(trip.ID, "90010100003"))
	requireHTTPError(t, err, http.StatusBadRequest, CodeClientAlreadyRegistered, MsgClientAlreadyRegistered)
}

func TestAssignClient_TripNotAvailable(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	svc := newTripService(repos)

	past := seedTrip(t, repos, "past", fixedNow.Add(-time.Hour))
	startsNow := seedTrip(t, repos, "now", fixedNow)

	cases := map[string]int{
		"past":    past.ID,
		"now":     startsNow.ID,
		"missing": startsNow.ID + 100,
	}
	for name, tripID := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AssignClient(ctx, assignPayload(tripID, "90010100004"))
			requireHTTPError(t, err, http.StatusBadRequest, CodeTripNotAvailable, MsgTripNotAvailable)
		})
	}

	if _, err := repos.Client.GetByPesel(ctx, "90010100004"); err == nil {
		t.Error("client created although every assignment was rejected")
	}
}

func TestDeleteClient(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	trips := newTripService(repos)
	clients := NewClientService(repos)

	free := &model.Client{FirstName: "F", LastName: "Ree", Email: "f@example.com", Telephone: "1", Pesel: "70010100001"}
	if err := repos.Client.Create(ctx, free); err != nil {
		t.Fatalf("create client: %v", err)
	}
	if err := clients.DeleteClient(ctx, free.ID); err != nil {
		t.Fatalf("delete unreferenced client: %v", err)
	}
	if _, err := repos.Client.GetByID(ctx, free.ID); err == nil {
		t.Error("client still present after delete")
	}

	trip := seedTrip(t, repos, "busy", fixedNow.Add(time.Hour))
	registration, err := trips.AssignClient(ctx, assignPayload(trip.ID, "70010100002"))
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	err = clients.DeleteClient(ctx, registration.ClientID)
	requireHTTPError(t, err, http.StatusBadRequest, CodeClientHasTrips, MsgClientHasTrips)

	if _, err := repos.Client.GetByID(ctx, registration.ClientID); err != nil {
		t.Errorf("referenced client removed: %v", err)
	}
	if n, _ := repos.Client.CountTrips(ctx, registration.ClientID); n != 1 {
		t.Errorf("registrations = %d after refused delete, want 1", n)
	}

	err = clients.DeleteClient(ctx, 9999)
	requireHTTPError(t, err, http.StatusNotFound, CodeClientNotFound, MsgClientNotFound)
}
