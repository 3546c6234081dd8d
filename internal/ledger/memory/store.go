package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// Store is an in-memory ledger.Repository. Individual calls are
// thread-safe; like the real store, it offers no atomicity across the
// multi-call sequences the service runs against it.
type Store struct {
	mu     sync.Mutex
	debts  map[uuid.UUID]*ledger.Debt
	people map[uuid.UUID]*ledger.Person
	seq    int
}

func New() *Store {
	return &Store{
		debts:  make(map[uuid.UUID]*ledger.Debt),
		people: make(map[uuid.UUID]*ledger.Person),
	}
}

func (s *Store) ListDebts(_ context.Context, userID uuid.UUID) ([]*ledger.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var debts []*ledger.Debt

	for _, d := range s.debts {
		if d.UserID == userID {
			c := *d
			debts = append(debts, &c)
		}
	}

	sortNewestFirst(debts)

	return debts, nil
}

func (s *Store) ListDebtsForPerson(_ context.Context, personID uuid.UUID) ([]*ledger.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var debts []*ledger.Debt

	for _, d := range s.debts {
		if d.PersonID == personID {
			c := *d
			debts = append(debts, &c)
		}
	}

	sortNewestFirst(debts)

	return debts, nil
}

func sortNewestFirst(debts []*ledger.Debt) {
	sort.Slice(debts, func(i, j int) bool {
		return debts[i].CreatedAt.After(debts[j].CreatedAt)
	})
}

func (s *Store) GetDebt(_ context.Context, id uuid.UUID) (*ledger.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.debts[id]
	if !ok {
		return nil, ledger.ErrDebtNotFound
	}

	c := *d

	return &c, nil
}

func (s *Store) CreateDebt(_ context.Context, d *ledger.Debt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = uuid.New()
	// Distinct timestamps keep the newest-first ordering stable even when
	// rows are created within the same nanosecond.
	s.seq++
	d.CreatedAt = time.Now().Add(time.Duration(s.seq) * time.Microsecond)

	c := *d
	s.debts[d.ID] = &c

	return nil
}

func (s *Store) SetDebtPaid(_ context.Context, id uuid.UUID, paid bool) (*ledger.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.debts[id]
	if !ok {
		return nil, ledger.ErrDebtNotFound
	}

	d.Paid = paid

	c := *d

	return &c, nil
}

func (s *Store) DeleteDebt(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.debts, id)

	return nil
}

func (s *Store) ListPeople(_ context.Context, userID uuid.UUID) ([]*ledger.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var people []*ledger.Person

	for _, p := range s.people {
		if p.UserID == userID {
			c := *p
			people = append(people, &c)
		}
	}

	sort.Slice(people, func(i, j int) bool {
		return people[i].Name < people[j].Name
	})

	return people, nil
}

func (s *Store) GetPerson(_ context.Context, id uuid.UUID) (*ledger.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.people[id]
	if !ok {
		return nil, ledger.ErrPersonNotFound
	}

	c := *p

	return &c, nil
}

func (s *Store) CreatePerson(_ context.Context, p *ledger.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.New()
	p.TotalOwed = decimal.Zero
	p.TotalPaid = decimal.Zero
	p.CreatedAt = time.Now()

	c := *p
	s.people[p.ID] = &c

	return nil
}

func (s *Store) UpdateTotalOwed(_ context.Context, personID uuid.UUID, total decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.people[personID]
	if !ok {
		return ledger.ErrPersonNotFound
	}

	p.TotalOwed = total

	return nil
}

var _ ledger.Repository = (*Store)(nil)
