package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wbonfim/DeliveryApp/internal/models"
)

// Memory repositories keep rows by value; callers always get copies.

type table[T any] struct {
	mu   sync.RWMutex
	rows map[int64]T
	seq  int64
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[int64]T)}
}

// nextID returns id when positive, otherwise the next sequence value.
// Must be called with mu held.
func (t *table[T]) nextID(id int64) int64 {
	if id > 0 {
		if id > t.seq {
			t.seq = id
		}
		return id
	}
	t.seq++
	return t.seq
}

func (t *table[T]) sortedIDs() []int64 {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func now() *time.Time {
	t := time.Now().UTC()
	return &t
}

func page[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// Users

type userRepository struct {
	table[models.User]
}

func NewUserRepository() UserRepository {
	return &userRepository{table: newTable[models.User]()}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID(user.ID)
	if user.CreatedAt == nil {
		user.CreatedAt = now()
	}
	r.rows[user.ID] = *user
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) find(match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.sortedIDs() {
		if user := r.rows[id]; match(user) {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

// Categories

type categoryRepository struct {
	table[models.Category]
}

func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{table: newTable[models.Category]()}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	category.ID = r.nextID(category.ID)
	r.rows[category.ID] = *category
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Category, 0, len(r.rows))
	for _, id := range r.sortedIDs() {
		if c := r.rows[id]; c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

// Restaurants

type restaurantRepository struct {
	table[models.Restaurant]
}

func NewRestaurantRepository() RestaurantRepository {
	return &restaurantRepository{table: newTable[models.Restaurant]()}
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	restaurant.ID = r.nextID(restaurant.ID)
	r.rows[restaurant.ID] = *restaurant
	return nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id int64) (*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	restaurant, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &restaurant, nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[restaurant.ID]; !ok {
		return ErrNotFound
	}
	r.rows[restaurant.ID] = *restaurant
	return nil
}

func (r *restaurantRepository) List(ctx context.Context, filter RestaurantFilter) ([]models.Restaurant, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matches := make([]models.Restaurant, 0, len(r.rows))
	for _, id := range r.sortedIDs() {
		rest := r.rows[id]
		if !rest.IsActive {
			continue
		}
		if filter.CategoryID > 0 && (rest.CategoryID == nil || *rest.CategoryID != filter.CategoryID) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rest.Name), search) &&
			!strings.Contains(strings.ToLower(rest.Description), search) {
			continue
		}
		matches = append(matches, rest)
	}
	return page(matches, filter.Limit, filter.Offset), len(matches), nil
}

// Products

type productRepository struct {
	table[models.Product]
}

func NewProductRepository() ProductRepository {
	return &productRepository{table: newTable[models.Product]()}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.ID = r.nextID(product.ID)
	r.rows[product.ID] = *product
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

func (r *productRepository) GetByRestaurantID(ctx context.Context, restaurantID int64) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Product{}
	for _, id := range r.sortedIDs() {
		if p := r.rows[id]; p.RestaurantID == restaurantID && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

// Carts, keyed by user id

type cartRepository struct {
	mu    sync.RWMutex
	carts map[int64]models.Cart
	seq   int64
	items int64
}

func NewCartRepository() CartRepository {
	return &cartRepository{carts: make(map[int64]models.Cart)}
}

func cloneCart(c models.Cart) *models.Cart {
	c.Items = append([]models.CartItem(nil), c.Items...)
	return &c
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cart, ok := r.carts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneCart(cart), nil
}

// Save assigns ids to the cart and to new items, then stores a copy.
func (r *cartRepository) Save(ctx context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cart.ID == 0 {
		r.seq++
		cart.ID = r.seq
		cart.CreatedAt = now()
	}
	for i := range cart.Items {
		if cart.Items[i].ID == 0 {
			r.items++
			cart.Items[i].ID = r.items
		}
	}
	cart.UpdatedAt = now()
	r.carts[cart.UserID] = *cloneCart(*cart)
	return nil
}

func (r *cartRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}

// Orders

type orderRepository struct {
	table[models.Order]
	items int64
}

func NewOrderRepository() OrderRepository {
	return &orderRepository{table: newTable[models.Order]()}
}

func cloneOrder(o models.Order) *models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	return &o
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = r.nextID(order.ID)
	if order.CreatedAt == nil {
		order.CreatedAt = now()
	}
	for i := range order.Items {
		r.items++
		order.Items[i].ID = r.items
	}
	r.rows[order.ID] = *cloneOrder(*order)
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[order.ID]; !ok {
		return ErrNotFound
	}
	r.rows[order.ID] = *cloneOrder(*order)
	return nil
}

// GetByUserID lists a user's orders, newest first.
func (r *orderRepository) GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]models.Order, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.sortedIDs()
	matches := []models.Order{}
	for i := len(ids) - 1; i >= 0; i-- {
		if o := r.rows[ids[i]]; o.UserID == userID {
			matches = append(matches, *cloneOrder(o))
		}
	}
	return page(matches, limit, offset), len(matches), nil
}

// Reviews

type reviewRepository struct {
	table[models.Review]
}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{table: newTable[models.Review]()}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review.ID = r.nextID(review.ID)
	if review.CreatedAt == nil {
		review.CreatedAt = now()
	}
	r.rows[review.ID] = *review
	return nil
}

func (r *reviewRepository) GetByOrderID(ctx context.Context, orderID int64) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.sortedIDs() {
		if rv := r.rows[id]; rv.OrderID != nil && *rv.OrderID == orderID {
			return &rv, nil
		}
	}
	return nil, ErrNotFound
}
