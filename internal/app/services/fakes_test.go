package services

import (
	"context"
	"sync"
	"time"

	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
)

type pairKey struct {
	left  int64
	right int64
}

// fakePublicationStore is an in-memory publicationStore
type fakePublicationStore struct {
	mu        sync.Mutex
	nextID    int64
	pubs      map[int64]*models.Publication
	interests map[int64][]int64
}

func newFakePublicationStore() *fakePublicationStore {
	return &fakePublicationStore{
		nextID:    1,
		pubs:      make(map[int64]*models.Publication),
		interests: make(map[int64][]int64),
	}
}

func (f *fakePublicationStore) add(pub *models.Publication) *models.Publication {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pub.ID == 0 {
		pub.ID = f.nextID
	}
	if pub.ID >= f.nextID {
		f.nextID = pub.ID + 1
	}
	f.pubs[pub.ID] = pub
	return pub
}

func (f *fakePublicationStore) Create(_ context.Context, pub *models.Publication) (int64, error) {
	copied := *pub
	return f.add(&copied).ID, nil
}

func (f *fakePublicationStore) GetByID(_ context.Context, id int64) (*models.Publication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pub, ok := f.pubs[id]
	if !ok {
		return nil, apperrors.ErrPublicationNotFound
	}
	copied := *pub
	return &copied, nil
}

func (f *fakePublicationStore) List(_ context.Context, authorID *int64, status *models.PublicationStatus, _ uint64, _ int) ([]*models.Publication, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Publication
	for _, pub := range f.pubs {
		if authorID != nil && pub.AuthorID != *authorID {
			continue
		}
		if status != nil && pub.Status != *status {
			continue
		}
		copied := *pub
		result = append(result, &copied)
	}
	return result, int64(len(result)), nil
}

func (f *fakePublicationStore) Update(_ context.Context, pub *models.Publication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pubs[pub.ID]; !ok {
		return apperrors.ErrPublicationNotFound
	}
	copied := *pub
	f.pubs[pub.ID] = &copied
	return nil
}

func (f *fakePublicationStore) UpdateStatus(_ context.Context, id int64, status models.PublicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	pub, ok := f.pubs[id]
	if !ok {
		return apperrors.ErrPublicationNotFound
	}
	pub.Status = status
	return nil
}

func (f *fakePublicationStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pubs[id]; !ok {
		return apperrors.ErrPublicationNotFound
	}
	delete(f.pubs, id)
	return nil
}

func (f *fakePublicationStore) SetInterests(_ context.Context, publicationID int64, interestIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interests[publicationID] = append([]int64(nil), interestIDs...)
	return nil
}

// fakeAccessStore is an in-memory accessStore
type fakeAccessStore struct {
	mu     sync.Mutex
	grants map[pairKey]int64 // (publication, user) -> grantedBy
}

func newFakeAccessStore() *fakeAccessStore {
	return &fakeAccessStore{grants: make(map[pairKey]int64)}
}

func (f *fakeAccessStore) Upsert(_ context.Context, publicationID, userID, grantedBy int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pairKey{publicationID, userID}
	if _, ok := f.grants[key]; ok {
		return false, nil
	}
	f.grants[key] = grantedBy
	return true, nil
}

func (f *fakeAccessStore) Delete(_ context.Context, publicationID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pairKey{publicationID, userID}
	if _, ok := f.grants[key]; !ok {
		return false, nil
	}
	delete(f.grants, key)
	return true, nil
}

func (f *fakeAccessStore) Exists(_ context.Context, publicationID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.grants[pairKey{publicationID, userID}]
	return ok, nil
}

// fakeRoleRoster is an in-memory roleRoster
type fakeRoleRoster struct {
	holders map[models.RoleType][]int64
}

func (f *fakeRoleRoster) GetActiveIDsByRole(_ context.Context, role models.RoleType) ([]int64, error) {
	return append([]int64(nil), f.holders[role]...), nil
}

// fakeEventStore is an in-memory eventStore
type fakeEventStore struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*models.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{nextID: 1, events: make(map[int64]*models.Event)}
}

func (f *fakeEventStore) add(event *models.Event) *models.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	if event.ID == 0 {
		event.ID = f.nextID
	}
	if event.ID >= f.nextID {
		f.nextID = event.ID + 1
	}
	f.events[event.ID] = event
	return event
}

func (f *fakeEventStore) Create(_ context.Context, event *models.Event) (int64, error) {
	copied := *event
	return f.add(&copied).ID, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id int64) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventStore) List(_ context.Context, status *models.EventStatus, _ uint64, _ int) ([]*models.Event, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Event
	for _, event := range f.events {
		if status != nil && event.Status != *status {
			continue
		}
		copied := *event
		result = append(result, &copied)
	}
	return result, int64(len(result)), nil
}

func (f *fakeEventStore) Update(_ context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[event.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	copied := *event
	f.events[event.ID] = &copied
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

// fakeParticipationStore mirrors the transactional enrollment semantics of
// the real store: the capacity check and the write happen under one lock.
type fakeParticipationStore struct {
	mu     sync.Mutex
	events *fakeEventStore
	rows   map[pairKey]models.ParticipationStatus // (event, user) -> status
}

func newFakeParticipationStore(events *fakeEventStore) *fakeParticipationStore {
	return &fakeParticipationStore{
		events: events,
		rows:   make(map[pairKey]models.ParticipationStatus),
	}
}

func (f *fakeParticipationStore) Enroll(_ context.Context, eventID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events.mu.Lock()
	event, ok := f.events.events[eventID]
	f.events.mu.Unlock()
	if !ok {
		return apperrors.ErrEventNotFound
	}

	key := pairKey{eventID, userID}
	if status, exists := f.rows[key]; exists && status.Active() {
		return apperrors.ErrAlreadyEnrolled
	}

	if event.Capacity != nil {
		active := 0
		for k, status := range f.rows {
			if k.left == eventID && status.Active() {
				active++
			}
		}
		if active >= *event.Capacity {
			return apperrors.ErrCapacityExceeded
		}
	}

	f.rows[key] = models.ParticipationEnrolled
	return nil
}

func (f *fakeParticipationStore) Cancel(_ context.Context, eventID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pairKey{eventID, userID}
	if f.rows[key] != models.ParticipationEnrolled {
		return apperrors.ErrNotEnrolled
	}
	f.rows[key] = models.ParticipationCancelled
	return nil
}

func (f *fakeParticipationStore) SetStatusFromEnrolled(_ context.Context, eventID, userID int64, status models.ParticipationStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pairKey{eventID, userID}
	if f.rows[key] != models.ParticipationEnrolled {
		return false, nil
	}
	f.rows[key] = status
	return true, nil
}

func (f *fakeParticipationStore) CountActive(_ context.Context, eventID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for k, status := range f.rows {
		if k.left == eventID && status.Active() {
			count++
		}
	}
	return count, nil
}

func (f *fakeParticipationStore) ListByEvent(_ context.Context, eventID int64) ([]*models.Participation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Participation
	for k, status := range f.rows {
		if k.left != eventID {
			continue
		}
		result = append(result, &models.Participation{
			EventID:   eventID,
			UserID:    k.right,
			Status:    status,
			UpdatedAt: time.Now(),
		})
	}
	return result, nil
}

// fakeMatcher is an in-memory interestMatcher
type fakeMatcher struct {
	mu      sync.Mutex
	matched map[int64][]int64 // publication -> user ids
}

func newFakeMatcher() *fakeMatcher {
	return &fakeMatcher{matched: make(map[int64][]int64)}
}

func (f *fakeMatcher) setMatched(publicationID int64, userIDs ...int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matched[publicationID] = userIDs
}

func (f *fakeMatcher) MatchedUserIDs(_ context.Context, publicationID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.matched[publicationID]...), nil
}

// fakeNotificationStore is an in-memory notificationStore
type fakeNotificationStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[pairKey]*models.Notification // (user, publication) -> row
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{nextID: 1, rows: make(map[pairKey]*models.Notification)}
}

func (f *fakeNotificationStore) CreateMissing(_ context.Context, publicationID int64, userIDs []int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var inserted []int64
	for _, userID := range userIDs {
		key := pairKey{userID, publicationID}
		if _, ok := f.rows[key]; ok {
			continue
		}
		f.rows[key] = &models.Notification{
			ID:            f.nextID,
			UserID:        userID,
			PublicationID: publicationID,
			CreatedAt:     time.Now(),
		}
		f.nextID++
		inserted = append(inserted, userID)
	}
	return inserted, nil
}

func (f *fakeNotificationStore) ListByUser(_ context.Context, userID int64, _ uint64, _ int) ([]*models.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Notification
	for k, n := range f.rows {
		if k.left == userID {
			copied := *n
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, notificationID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, n := range f.rows {
		if n.ID == notificationID && k.left == userID {
			n.Read = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (f *fakeNotificationStore) CountUnread(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for k, n := range f.rows {
		if k.left == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// fakeEnqueuer records fanout enqueues
type fakeEnqueuer struct {
	mu       sync.Mutex
	enqueued []int64
}

func (f *fakeEnqueuer) EnqueueFanout(_ context.Context, publicationID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enqueued = append(f.enqueued, publicationID)
	return nil
}

func (f *fakeEnqueuer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.enqueued)
}
