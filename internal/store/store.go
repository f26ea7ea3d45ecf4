// Package store owns the application state of a delivery session and
// exposes the operations the UI issues against it. Every operation talks
// to the remote API through an API value and turns the outcome into
// reducer actions.
package store

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/pkg/metrics"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrMissingToken    = errors.New("login response missing token")
	ErrMissingUser     = errors.New("response missing user")
	ErrMissingCart     = errors.New("response missing cart")
)

// FailurePolicy decides what a failed operation does to the state and
// to its caller.
type FailurePolicy string

const (
	// PolicyPropagate records the message with SET_ERROR and returns the error.
	PolicyPropagate FailurePolicy = "propagate"
	// PolicySwallow logs the error and leaves state and caller untouched.
	PolicySwallow FailurePolicy = "swallow"
	// PolicyResetSession drops the credential and logs out.
	PolicyResetSession FailurePolicy = "reset_session"
)

const (
	OpLogin           = "login"
	OpRegister        = "register"
	OpLogout          = "logout"
	OpLoadCurrentUser = "load_current_user"
	OpLoadRestaurants = "load_restaurants"
	OpLoadCategories  = "load_categories"
	OpLoadCart        = "load_cart"
	OpAddToCart       = "add_to_cart"
	OpRemoveFromCart  = "remove_from_cart"
	OpClearCart       = "clear_cart"
	OpCreateOrder     = "create_order"
)

// Policies maps each operation to its failure policy.
var Policies = map[string]FailurePolicy{
	OpLogin:           PolicyPropagate,
	OpRegister:        PolicyPropagate,
	OpLoadCurrentUser: PolicyResetSession,
	OpLoadRestaurants: PolicyPropagate,
	OpLoadCategories:  PolicySwallow,
	OpLoadCart:        PolicySwallow,
	OpAddToCart:       PolicyPropagate,
	OpRemoveFromCart:  PolicyPropagate,
	OpClearCart:       PolicyPropagate,
	OpCreateOrder:     PolicyPropagate,
}

type Store struct {
	api API
	log zerolog.Logger

	mu    sync.Mutex
	state State

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

func New(api API, log zerolog.Logger) *Store {
	return &Store{
		api:   api,
		log:   log,
		state: InitialState(),
		subs:  make(map[int]func(State)),
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HasCredential reports whether a bearer credential is held.
func (s *Store) HasCredential() bool {
	return s.api.HasCredential()
}

// Dispatch applies a to the current state and notifies subscribers with
// the result.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	next := Reduce(s.state, a)
	s.state = next
	s.mu.Unlock()

	metrics.StoreActionsTotal.WithLabelValues(string(a.Kind)).Inc()

	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
	return next
}

// Subscribe registers fn to run after every dispatch. The returned func
// removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) SetLoading(loading bool) {
	s.Dispatch(SetLoading(loading))
}

func (s *Store) SetError(msg string) {
	s.Dispatch(SetError(msg))
}

// fail applies the failure policy of op. It returns err for propagating
// operations and nil otherwise.
func (s *Store) fail(ctx context.Context, op string, err error) error {
	policy := Policies[op]
	if policy == "" {
		policy = PolicyPropagate
	}
	metrics.StoreFailuresTotal.WithLabelValues(op, string(policy)).Inc()

	switch policy {
	case PolicySwallow:
		s.log.Warn().Err(err).Str("operation", op).Msg("best-effort operation failed")
		return nil
	case PolicyResetSession:
		s.log.Warn().Err(err).Str("operation", op).Msg("session could not be resumed, logging out")
		if cerr := s.api.ClearCredential(ctx); cerr != nil {
			s.log.Error().Err(cerr).Msg("failed to clear stored credential")
		}
		s.Dispatch(Logout())
		return nil
	default:
		s.Dispatch(SetError(err.Error()))
		return err
	}
}

// Bootstrap resumes a stored session and loads categories, concurrently.
func (s *Store) Bootstrap(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		s.LoadCurrentUser(ctx)
		return nil
	})
	g.Go(func() error {
		s.LoadCategories(ctx)
		return nil
	})
	_ = g.Wait()
}

// Login exchanges credentials for a token, adopts it and loads the cart.
func (s *Store) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	s.Dispatch(SetLoading(true))

	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, s.fail(ctx, OpLogin, err)
	}
	if resp.Token == "" {
		return nil, s.fail(ctx, OpLogin, ErrMissingToken)
	}
	if resp.User == nil {
		return nil, s.fail(ctx, OpLogin, ErrMissingUser)
	}
	if err := s.api.SetCredential(ctx, resp.Token); err != nil {
		return nil, s.fail(ctx, OpLogin, err)
	}

	s.Dispatch(SetUser(resp.User))
	s.log.Info().Int64("user_id", resp.User.ID).Msg("logged in")

	s.LoadCart(ctx)
	return resp.User, nil
}

// Register creates an account and marks its user as current. A token in
// the response, when the server issues one, is adopted as the credential.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	s.Dispatch(SetLoading(true))

	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, OpRegister, err)
	}
	if resp.User == nil {
		return nil, s.fail(ctx, OpRegister, ErrMissingUser)
	}
	if resp.Token != "" {
		if err := s.api.SetCredential(ctx, resp.Token); err != nil {
			return nil, s.fail(ctx, OpRegister, err)
		}
	}

	s.Dispatch(SetUser(resp.User))
	return resp.User, nil
}

// Logout forgets the credential and the session. The session is cleared
// even when removing the stored credential fails; that error is returned.
func (s *Store) Logout(ctx context.Context) error {
	err := s.api.ClearCredential(ctx)
	if err != nil {
		metrics.StoreFailuresTotal.WithLabelValues(OpLogout, string(PolicyPropagate)).Inc()
		s.log.Error().Err(err).Msg("failed to clear stored credential")
	}
	s.Dispatch(Logout())
	return err
}

// LoadCurrentUser resumes the session of a stored credential. Without a
// credential it does nothing; on failure the session is reset.
func (s *Store) LoadCurrentUser(ctx context.Context) {
	if !s.api.HasCredential() {
		return
	}
	s.Dispatch(SetLoading(true))

	resp, err := s.api.GetCurrentUser(ctx)
	if err == nil && resp.User == nil {
		err = ErrMissingUser
	}
	if err != nil {
		_ = s.fail(ctx, OpLoadCurrentUser, err)
		return
	}

	s.Dispatch(SetUser(resp.User))
	s.LoadCart(ctx)
}

// LoadRestaurants replaces the listing. params are forwarded as query
// filters.
func (s *Store) LoadRestaurants(ctx context.Context, params url.Values) ([]models.Restaurant, error) {
	s.Dispatch(SetLoading(true))

	resp, err := s.api.GetRestaurants(ctx, params)
	if err != nil {
		return nil, s.fail(ctx, OpLoadRestaurants, err)
	}

	list := resp.Restaurants
	if list == nil {
		list = []models.Restaurant{}
	}
	s.Dispatch(SetRestaurants(list))
	return list, nil
}

func (s *Store) LoadCategories(ctx context.Context) {
	resp, err := s.api.GetCategories(ctx)
	if err != nil {
		_ = s.fail(ctx, OpLoadCategories, err)
		return
	}

	list := resp.Categories
	if list == nil {
		list = []models.Category{}
	}
	s.Dispatch(SetCategories(list))
}

// LoadCart refreshes the cart of an authenticated session; otherwise it
// does nothing.
func (s *Store) LoadCart(ctx context.Context) {
	if !s.Snapshot().IsAuthenticated {
		return
	}
	resp, err := s.api.GetCart(ctx)
	if err != nil {
		_ = s.fail(ctx, OpLoadCart, err)
		return
	}
	s.Dispatch(SetCart(resp.Cart))
}

// AddToCart adds quantity units of a product and adopts the cart the
// server returns.
func (s *Store) AddToCart(ctx context.Context, productID int64, quantity int, notes string) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	s.Dispatch(SetLoading(true))

	resp, err := s.api.AddToCart(ctx, productID, quantity, notes)
	if err == nil && resp.Cart == nil {
		err = ErrMissingCart
	}
	if err != nil {
		return nil, s.fail(ctx, OpAddToCart, err)
	}

	s.Dispatch(AddToCart(resp.Cart))
	return resp.Cart, nil
}

// RemoveFromCart deletes a cart line and reloads the cart. A failed
// reload is only logged; the store still settles idle.
func (s *Store) RemoveFromCart(ctx context.Context, itemID int64) error {
	s.Dispatch(SetLoading(true))

	if _, err := s.api.RemoveFromCart(ctx, itemID); err != nil {
		return s.fail(ctx, OpRemoveFromCart, err)
	}

	if !s.Snapshot().IsAuthenticated {
		s.Dispatch(SetLoading(false))
		return nil
	}
	resp, err := s.api.GetCart(ctx)
	if err != nil {
		_ = s.fail(ctx, OpLoadCart, err)
		s.Dispatch(SetLoading(false))
		return nil
	}
	s.Dispatch(RemoveFromCart(resp.Cart))
	return nil
}

func (s *Store) ClearCart(ctx context.Context) error {
	s.Dispatch(SetLoading(true))

	if _, err := s.api.ClearCart(ctx); err != nil {
		return s.fail(ctx, OpClearCart, err)
	}
	s.Dispatch(ClearCart())
	return nil
}

// CreateOrder places an order from the server-side cart, which the
// server consumes; the local cart is cleared on success.
func (s *Store) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	s.Dispatch(SetLoading(true))

	resp, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, OpCreateOrder, err)
	}

	s.Dispatch(ClearCart())
	if resp.Order != nil {
		s.log.Info().Str("order_number", resp.Order.OrderNumber).Msg("order placed")
	}
	return resp.Order, nil
}
