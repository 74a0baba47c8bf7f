package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/ports"
)

// fakeRepository is an in-memory Repository covering the slices of the port the
// usecase tests exercise.
type fakeRepository struct {
	riders []model.Rider
	nextID int64

	saveRiderErr  error
	listRidersErr error

	memberStatusUpdates map[int64]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, memberStatusUpdates: map[int64]bool{}}
}

func (f *fakeRepository) FindRider(_ context.Context, key ports.RiderKey) (*model.Rider, error) {
	for i := range f.riders {
		r := &f.riders[i]
		if r.EventKind == key.EventKind && r.EventID == key.EventID &&
			r.Email == key.Email && r.FirstName == key.FirstName && r.LastName == key.LastName {
			found := *r
			return &found, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeRepository) SaveRider(_ context.Context, rider *model.Rider) error {
	if f.saveRiderErr != nil {
		return f.saveRiderErr
	}
	rider.ID = f.nextID
	rider.CreatedAt = time.Now()
	f.nextID++
	f.riders = append(f.riders, *rider)
	return nil
}

func (f *fakeRepository) ListRiders(_ context.Context, kind model.EventKind, eventID int64) ([]model.Rider, error) {
	if f.listRidersErr != nil {
		return nil, f.listRidersErr
	}
	var riders []model.Rider
	for _, r := range f.riders {
		if r.EventKind == kind && r.EventID == eventID {
			riders = append(riders, r)
		}
	}
	sort.Slice(riders, func(i, j int) bool {
		if riders[i].LowercaseLastName != riders[j].LowercaseLastName {
			return riders[i].LowercaseLastName < riders[j].LowercaseLastName
		}
		return riders[i].ID < riders[j].ID
	})
	return riders, nil
}

func (f *fakeRepository) UpdateRiderMemberStatus(_ context.Context, riderID int64, isMember bool) error {
	f.memberStatusUpdates[riderID] = isMember
	for i := range f.riders {
		if f.riders[i].ID == riderID {
			status := isMember
			f.riders[i].MemberStatus = &status
		}
	}
	return nil
}

func (f *fakeRepository) SaveBrevet(context.Context, *model.Brevet) error       { return errNotWired }
func (f *fakeRepository) SavePopulaire(context.Context, *model.Populaire) error { return errNotWired }
func (f *fakeRepository) FindBrevet(context.Context, ports.FindBrevetQuery) (*model.Brevet, error) {
	return nil, errNotWired
}
func (f *fakeRepository) FindPopulaire(context.Context, string) (*model.Populaire, error) {
	return nil, errNotWired
}
func (f *fakeRepository) ListBrevets(context.Context, ports.ListEventsQuery) ([]model.Brevet, error) {
	return nil, errNotWired
}
func (f *fakeRepository) ListPopulaires(context.Context, ports.ListEventsQuery) ([]model.Populaire, error) {
	return nil, errNotWired
}
func (f *fakeRepository) DeleteBrevet(context.Context, int64) error    { return errNotWired }
func (f *fakeRepository) DeletePopulaire(context.Context, int64) error { return errNotWired }
func (f *fakeRepository) SetRosterDoc(context.Context, model.EventKind, int64, string) error {
	return errNotWired
}

var errNotWired = errors.New("not wired in this test")

// fakeMailer records sent messages.
type fakeMailer struct {
	sent    []model.Message
	sendErr error
}

func (f *fakeMailer) Send(_ context.Context, msg model.Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

// fakeQueue records enqueued jobs.
type fakeQueue struct {
	jobs       []model.RosterSyncJob
	enqueueErr error
}

func (f *fakeQueue) Enqueue(_ context.Context, job model.RosterSyncJob) error {
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.jobs = append(f.jobs, job)
	return nil
}

// fakeMembership answers lookups from a name-keyed map and counts calls.
// Names absent from the map answer model.ErrUnknownMember.
type fakeMembership struct {
	members map[string]bool
	calls   []string
}

func (f *fakeMembership) IsMember(_ context.Context, firstName, lastName string) (bool, error) {
	key := firstName + " " + lastName
	f.calls = append(f.calls, key)
	isMember, ok := f.members[key]
	if !ok {
		return false, model.ErrUnknownMember
	}
	return isMember, nil
}

func (f *fakeMembership) callCount(firstName, lastName string) int {
	count := 0
	for _, c := range f.calls {
		if c == firstName+" "+lastName {
			count++
		}
	}
	return count
}

// fakeRosterDoc is an in-memory roster document.
type fakeRosterDoc struct {
	rows        [][]string
	rowCountErr error
	updateErr   error
	insertErr   error

	updates int
	inserts int
}

func (f *fakeRosterDoc) RowCount(context.Context, string) (int, error) {
	if f.rowCountErr != nil {
		return 0, f.rowCountErr
	}
	return len(f.rows), nil
}

func (f *fakeRosterDoc) UpdateRow(_ context.Context, _ string, index int, row []string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if index < 0 || index >= len(f.rows) {
		return errors.New("update index out of range")
	}
	f.rows[index] = row
	f.updates++
	return nil
}

func (f *fakeRosterDoc) InsertRow(_ context.Context, _ string, row []string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows = append(f.rows, row)
	f.inserts++
	return nil
}
