package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/models"
	"github.com/google/uuid"
)

var errStoreDown = errors.New("connection refused")

// memStore is an in-memory stand-in for the three tables. It enforces the
// unique index on auth_uid and records the order of calls.
type memStore struct {
	mu       sync.Mutex
	users    []models.AppUser
	contacts []models.Contact
	messages []models.Message
	calls    []string
	clock    time.Time

	findUserErr      error
	createUserErr    error
	createContactErr error
	createMsgErr     error
	listErr          error

	// staleLookup makes FindBySubject miss, as a lookup racing another
	// request's insert would.
	staleLookup bool

	// lookupBarrier, when set, blocks every FindBySubject until it is closed.
	lookupBarrier chan struct{}
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (m *memStore) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) FindBySubject(ctx context.Context, subject string) (*models.AppUser, error) {
	if m.lookupBarrier != nil {
		<-m.lookupBarrier
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("find_user")
	if m.findUserErr != nil {
		return nil, m.findUserErr
	}
	if m.staleLookup {
		return nil, nil
	}
	for _, u := range m.users {
		if u.AuthSubjectID == subject {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memStore) Create(ctx context.Context, user *models.AppUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("create_user")
	if m.createUserErr != nil {
		return m.createUserErr
	}
	for _, u := range m.users {
		if u.AuthSubjectID == user.AuthSubjectID {
			return errors.New(`duplicate key value violates unique constraint "idx_app_users_auth_uid"`)
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = m.tick()
	m.users = append(m.users, *user)
	return nil
}

func (m *memStore) userCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

type contactStore struct{ *memStore }

func (s contactStore) Create(ctx context.Context, c *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("create_contact")
	if s.createContactErr != nil {
		return s.createContactErr
	}
	c.ID = uuid.New()
	c.CreatedAt = s.tick()
	s.contacts = append(s.contacts, *c)
	return nil
}

type messageStore struct{ *memStore }

func (s messageStore) Create(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("create_message")
	if s.createMsgErr != nil {
		return s.createMsgErr
	}
	msg.ID = uuid.New()
	msg.CreatedAt = s.tick()
	s.messages = append(s.messages, *msg)
	return nil
}

func (s messageStore) ListWithContacts(ctx context.Context, userID uuid.UUID) ([]models.MessageWithContact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("list_messages")
	if s.listErr != nil {
		return nil, s.listErr
	}

	contacts := make(map[uuid.UUID]models.Contact, len(s.contacts))
	for _, c := range s.contacts {
		contacts[c.ID] = c
	}

	var rows []models.MessageWithContact
	for _, msg := range s.messages {
		if msg.UserID != userID {
			continue
		}
		c := contacts[msg.ContactID]
		rows = append(rows, models.MessageWithContact{
			ID:               msg.ID,
			ContactID:        msg.ContactID,
			GoalPrompt:       msg.GoalPrompt,
			GeneratedMessage: msg.GeneratedMessage,
			CreatedAt:        msg.CreatedAt,
			TargetName:       c.TargetName,
			TargetRole:       c.TargetRole,
			LinkedInURL:      c.LinkedInURL,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

// fakeGenerator returns text or err and records the contact it saw.
type fakeGenerator struct {
	store *memStore
	text  string
	err   error
	seen  *models.Contact
}

func (g *fakeGenerator) Generate(ctx context.Context, contact *models.Contact, goalPrompt string) (string, error) {
	g.store.mu.Lock()
	g.store.record("generate")
	g.store.mu.Unlock()
	g.seen = contact
	if g.err != nil {
		return "", g.err
	}
	return g.text + " / " + goalPrompt, nil
}
