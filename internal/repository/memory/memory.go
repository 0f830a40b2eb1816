// Package memory is an in-process store with the same contracts as the
// MySQL repositories. It backs STORAGE=memory and the HTTP tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hortaconecta/hortaconecta-go/internal/model"
	"github.com/hortaconecta/hortaconecta-go/internal/repository"
)

// Store holds users, gardens and products behind one lock.
type Store struct {
	mu       sync.RWMutex
	users    map[int64]model.User
	gardens  map[int64]model.Garden
	products map[int64]model.Product
	nextID   struct{ user, garden, product int64 }
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:    make(map[int64]model.User),
		gardens:  make(map[int64]model.Garden),
		products: make(map[int64]model.Product),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Gardens returns the garden repository view of the store.
func (s *Store) Gardens() *GardenRepository { return &GardenRepository{s: s} }

// Products returns the product repository view of the store.
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// UserRepository is the in-memory user store.
type UserRepository struct{ s *Store }

// Create stores a new user, assigning an ID unless one is set.
func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID == 0 {
		r.s.nextID.user++
		for r.s.users[r.s.nextID.user].ID != 0 {
			r.s.nextID.user++
		}
		user.ID = r.s.nextID.user
	} else if _, taken := r.s.users[user.ID]; taken {
		return repository.ErrDuplicateEmail
	}
	r.s.users[user.ID] = *user
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

// List returns every user ordered by ID.
func (r *UserRepository) List(_ context.Context) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var users []model.User
	for _, id := range sortedKeys(r.s.users) {
		users = append(users, r.s.users[id])
	}
	return users, nil
}

// Update overwrites the profile fields of an existing user.
func (r *UserRepository) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	for id, u := range r.s.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cur.Login, cur.Name, cur.Email = user.Login, user.Name, user.Email
	cur.PasswordHash, cur.Address = user.PasswordHash, user.Address
	r.s.users[user.ID] = cur
	return nil
}

// Delete removes a user along with their garden and its products.
func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.s.users, id)
	for gid, g := range r.s.gardens {
		if g.UserID == id {
			r.s.deleteGardenLocked(gid)
		}
	}
	return nil
}

// GardenRepository is the in-memory garden store.
type GardenRepository struct{ s *Store }

// Create stores a garden. A user may own only one.
func (r *GardenRepository) Create(_ context.Context, garden *model.Garden) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, g := range r.s.gardens {
		if g.UserID == garden.UserID {
			return repository.ErrGardenExists
		}
	}
	r.s.nextID.garden++
	garden.ID = r.s.nextID.garden
	r.s.gardens[garden.ID] = *garden
	return nil
}

// GetByID retrieves a garden by its ID.
func (r *GardenRepository) GetByID(_ context.Context, id int64) (*model.Garden, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g, ok := r.s.gardens[id]
	if !ok {
		return nil, repository.ErrGardenNotFound
	}
	return &g, nil
}

// GetByUserID retrieves the garden owned by userID.
func (r *GardenRepository) GetByUserID(_ context.Context, userID int64) (*model.Garden, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if g, ok := r.s.gardenOfLocked(userID); ok {
		return &g, nil
	}
	return nil, repository.ErrGardenNotFound
}

// ListWithOwners returns every garden with its owner's address, ordered by ID.
func (r *GardenRepository) ListWithOwners(_ context.Context) ([]model.GardenWithOwner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.GardenWithOwner
	for _, id := range sortedKeys(r.s.gardens) {
		g := r.s.gardens[id]
		owner, ok := r.s.users[g.UserID]
		if !ok {
			continue
		}
		out = append(out, model.GardenWithOwner{Garden: g, OwnerAddress: owner.Address})
	}
	return out, nil
}

// ListWithProducts returns every garden with its products.
func (r *GardenRepository) ListWithProducts(_ context.Context) ([]model.GardenProducts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.GardenProducts
	for _, gid := range sortedKeys(r.s.gardens) {
		gp := model.GardenProducts{Garden: r.s.gardens[gid], Products: []model.Product{}}
		for _, pid := range sortedKeys(r.s.products) {
			if p := r.s.products[pid]; p.GardenID == gid {
				gp.Products = append(gp.Products, p)
			}
		}
		out = append(out, gp)
	}
	return out, nil
}

// UpdateByUser changes the address and category of userID's garden.
func (r *GardenRepository) UpdateByUser(_ context.Context, userID int64, address, category string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.gardenOfLocked(userID)
	if !ok {
		return repository.ErrGardenNotFound
	}
	g.Address, g.Category = address, category
	r.s.gardens[g.ID] = g
	return nil
}

// UpdateOwned changes garden id if userID owns it.
func (r *GardenRepository) UpdateOwned(_ context.Context, id, userID int64, address, category string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.gardens[id]
	if !ok || g.UserID != userID {
		return repository.ErrGardenNotFound
	}
	g.Address, g.Category = address, category
	r.s.gardens[id] = g
	return nil
}

// DeleteByUser removes userID's garden and its products.
func (r *GardenRepository) DeleteByUser(_ context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.gardenOfLocked(userID)
	if !ok {
		return repository.ErrGardenNotFound
	}
	r.s.deleteGardenLocked(g.ID)
	return nil
}

// DeleteOwned removes garden id and its products if userID owns it.
func (r *GardenRepository) DeleteOwned(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.gardens[id]
	if !ok || g.UserID != userID {
		return repository.ErrGardenNotFound
	}
	r.s.deleteGardenLocked(id)
	return nil
}

// ProductRepository is the in-memory product store.
type ProductRepository struct{ s *Store }

// Create stores a product under an existing garden.
func (r *ProductRepository) Create(_ context.Context, p *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.gardens[p.GardenID]; !ok {
		return repository.ErrGardenNotFound
	}
	r.s.nextID.product++
	p.ID = r.s.nextID.product
	r.s.products[p.ID] = *p
	return nil
}

// List returns every product ordered by ID.
func (r *ProductRepository) List(_ context.Context) ([]model.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.Product
	for _, id := range sortedKeys(r.s.products) {
		out = append(out, r.s.products[id])
	}
	return out, nil
}

// ListWithGardens returns every product with its garden address and owner name.
func (r *ProductRepository) ListWithGardens(_ context.Context) ([]model.ProductWithGarden, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.ProductWithGarden
	for _, id := range sortedKeys(r.s.products) {
		p := r.s.products[id]
		g, ok := r.s.gardens[p.GardenID]
		if !ok {
			continue
		}
		owner, ok := r.s.users[g.UserID]
		if !ok {
			continue
		}
		out = append(out, model.ProductWithGarden{Product: p, GardenAddress: g.Address, OwnerName: owner.Name})
	}
	return out, nil
}

// UpdateOwned overwrites product p.ID if its garden belongs to userID.
func (r *ProductRepository) UpdateOwned(_ context.Context, userID int64, p *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.products[p.ID]
	if !ok || r.s.gardens[cur.GardenID].UserID != userID {
		return repository.ErrProductNotFound
	}
	p.GardenID = cur.GardenID
	r.s.products[p.ID] = *p
	return nil
}

// DeleteOwned removes product id if its garden belongs to userID.
func (r *ProductRepository) DeleteOwned(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.products[id]
	if !ok || r.s.gardens[cur.GardenID].UserID != userID {
		return repository.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (s *Store) gardenOfLocked(userID int64) (model.Garden, bool) {
	for _, g := range s.gardens {
		if g.UserID == userID {
			return g, true
		}
	}
	return model.Garden{}, false
}

func (s *Store) deleteGardenLocked(id int64) {
	delete(s.gardens, id)
	for pid, p := range s.products {
		if p.GardenID == id {
			delete(s.products, pid)
		}
	}
}
