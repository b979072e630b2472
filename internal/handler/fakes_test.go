package handler

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/vidly-api/internal/model"
	"github.com/iliyamo/vidly-api/internal/repository"
)

// mem is an in-memory collection keyed by ObjectId.  id points at the
// document's _id field.
type mem[T any] struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]T
	id   func(*T) *primitive.ObjectID
	fail error // returned by every call when set
}

func newMem[T any](id func(*T) *primitive.ObjectID) *mem[T] {
	return &mem[T]{docs: map[primitive.ObjectID]T{}, id: id}
}

func (m *mem[T]) list(less func(a, b T) bool, page repository.Page) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	out := make([]T, 0, len(m.docs))
	for _, d := range m.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	if page.Limit > 0 {
		if page.Skip >= int64(len(out)) {
			return []T{}, nil
		}
		end := page.Skip + page.Limit
		if end > int64(len(out)) {
			end = int64(len(out))
		}
		out = out[page.Skip:end]
	}
	return out, nil
}

func (m *mem[T]) get(id primitive.ObjectID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	d, ok := m.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (m *mem[T]) insert(d *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if m.id(d).IsZero() {
		*m.id(d) = primitive.NewObjectID()
	}
	m.docs[*m.id(d)] = *d
	return nil
}

// update applies fn to the stored document and returns the result.
func (m *mem[T]) update(id primitive.ObjectID, fn func(*T) error) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	d, ok := m.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := fn(&d); err != nil {
		return nil, err
	}
	m.docs[id] = d
	return &d, nil
}

func (m *mem[T]) remove(id primitive.ObjectID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	d, ok := m.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(m.docs, id)
	return &d, nil
}

// ----- customers -----

type memCustomers struct{ *mem[model.Customer] }

func newMemCustomers() memCustomers {
	return memCustomers{newMem(func(c *model.Customer) *primitive.ObjectID { return &c.ID })}
}

func (s memCustomers) List(_ context.Context, p repository.Page) ([]model.Customer, error) {
	return s.list(func(a, b model.Customer) bool { return a.Name < b.Name }, p)
}
func (s memCustomers) GetByID(_ context.Context, id primitive.ObjectID) (*model.Customer, error) {
	return s.get(id)
}
func (s memCustomers) Create(_ context.Context, c *model.Customer) error { return s.insert(c) }
func (s memCustomers) Update(_ context.Context, id primitive.ObjectID, c model.Customer) (*model.Customer, error) {
	return s.update(id, func(d *model.Customer) error {
		d.Name, d.Phone, d.IsGold = c.Name, c.Phone, c.IsGold
		return nil
	})
}
func (s memCustomers) Delete(_ context.Context, id primitive.ObjectID) (*model.Customer, error) {
	return s.remove(id)
}

// ----- genres -----

type memGenres struct{ *mem[model.Genre] }

func newMemGenres() memGenres {
	return memGenres{newMem(func(g *model.Genre) *primitive.ObjectID { return &g.ID })}
}

func (s memGenres) List(_ context.Context, p repository.Page) ([]model.Genre, error) {
	return s.list(func(a, b model.Genre) bool { return a.Name < b.Name }, p)
}
func (s memGenres) GetByID(_ context.Context, id primitive.ObjectID) (*model.Genre, error) {
	return s.get(id)
}
func (s memGenres) Create(_ context.Context, g *model.Genre) error { return s.insert(g) }
func (s memGenres) UpdateName(_ context.Context, id primitive.ObjectID, name string) (*model.Genre, error) {
	return s.update(id, func(d *model.Genre) error { d.Name = name; return nil })
}
func (s memGenres) Delete(_ context.Context, id primitive.ObjectID) (*model.Genre, error) {
	return s.remove(id)
}

// ----- movies -----

type memMovies struct{ *mem[model.Movie] }

func newMemMovies() memMovies {
	return memMovies{newMem(func(m *model.Movie) *primitive.ObjectID { return &m.ID })}
}

func (s memMovies) List(_ context.Context, p repository.Page) ([]model.Movie, error) {
	return s.list(func(a, b model.Movie) bool { return a.Title < b.Title }, p)
}
func (s memMovies) GetByID(_ context.Context, id primitive.ObjectID) (*model.Movie, error) {
	return s.get(id)
}
func (s memMovies) Create(_ context.Context, m *model.Movie) error { return s.insert(m) }
func (s memMovies) Update(_ context.Context, id primitive.ObjectID, m model.Movie) (*model.Movie, error) {
	return s.update(id, func(d *model.Movie) error {
		d.Title, d.NumberInStock, d.DailyRentalRate, d.Genre = m.Title, m.NumberInStock, m.DailyRentalRate, m.Genre
		return nil
	})
}
func (s memMovies) Delete(_ context.Context, id primitive.ObjectID) (*model.Movie, error) {
	return s.remove(id)
}
func (s memMovies) DecrementStock(_ context.Context, id primitive.ObjectID) error {
	_, err := s.update(id, func(d *model.Movie) error {
		if d.NumberInStock <= 0 {
			return repository.ErrOutOfStock
		}
		d.NumberInStock--
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return repository.ErrOutOfStock
	}
	return err
}
func (s memMovies) IncrementStock(_ context.Context, id primitive.ObjectID) error {
	_, err := s.update(id, func(d *model.Movie) error { d.NumberInStock++; return nil })
	return err
}

// ----- rentals -----

type memRentals struct{ *mem[model.Rental] }

func newMemRentals() memRentals {
	return memRentals{newMem(func(r *model.Rental) *primitive.ObjectID { return &r.ID })}
}

func (s memRentals) List(_ context.Context, p repository.Page) ([]model.Rental, error) {
	return s.list(func(a, b model.Rental) bool { return a.DateOut.After(b.DateOut) }, p)
}
func (s memRentals) GetByID(_ context.Context, id primitive.ObjectID) (*model.Rental, error) {
	return s.get(id)
}
func (s memRentals) Insert(_ context.Context, r *model.Rental) error { return s.insert(r) }
func (s memRentals) Delete(_ context.Context, id primitive.ObjectID) error {
	_, err := s.remove(id)
	return err
}
func (s memRentals) find(c, m primitive.ObjectID, match func(model.Rental) bool) (*model.Rental, error) {
	all, err := s.list(func(a, b model.Rental) bool { return a.DateOut.After(b.DateOut) }, repository.Page{})
	if err != nil {
		return nil, err
	}
	for _, r := range all {
		if r.Customer.ID == c && r.Movie.ID == m && match(r) {
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}
func (s memRentals) FindOpen(_ context.Context, c, m primitive.ObjectID) (*model.Rental, error) {
	return s.find(c, m, func(r model.Rental) bool { return r.IsOpen() })
}
func (s memRentals) FindLatest(_ context.Context, c, m primitive.ObjectID) (*model.Rental, error) {
	return s.find(c, m, func(model.Rental) bool { return true })
}
func (s memRentals) MarkReturned(_ context.Context, r *model.Rental) error {
	_, err := s.update(r.ID, func(d *model.Rental) error {
		if !d.IsOpen() {
			return repository.ErrAlreadyReturned
		}
		d.DateReturned, d.RentalFee = r.DateReturned, r.RentalFee
		return nil
	})
	return err
}
func (s memRentals) Reopen(_ context.Context, id primitive.ObjectID) error {
	_, err := s.update(id, func(d *model.Rental) error { d.Reopen(); return nil })
	return err
}

// ----- users -----

type memUsers struct{ *mem[model.User] }

func newMemUsers() memUsers {
	return memUsers{newMem(func(u *model.User) *primitive.ObjectID { return &u.ID })}
}

func (s memUsers) Create(_ context.Context, u *model.User) error {
	if _, err := s.GetByEmail(context.Background(), u.Email); err == nil {
		return repository.ErrEmailExists
	}
	u.Email = repository.NormalizeEmail(u.Email)
	return s.insert(u)
}
func (s memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	all, err := s.list(func(a, b model.User) bool { return a.Email < b.Email }, repository.Page{})
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if u.Email == repository.NormalizeEmail(email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}
func (s memUsers) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.get(id)
}
