package store

import "github.com/wbonfim/DeliveryApp/internal/models"

type ActionKind string

const (
	KindSetLoading     ActionKind = "SET_LOADING"
	KindSetError       ActionKind = "SET_ERROR"
	KindSetUser        ActionKind = "SET_USER"
	KindLogout         ActionKind = "LOGOUT"
	KindSetRestaurants ActionKind = "SET_RESTAURANTS"
	KindSetCategories  ActionKind = "SET_CATEGORIES"
	KindSetCart        ActionKind = "SET_CART"
	KindAddToCart      ActionKind = "ADD_TO_CART"
	KindRemoveFromCart ActionKind = "REMOVE_FROM_CART"
	KindClearCart      ActionKind = "CLEAR_CART"
)

// Action is a request for one state transition. Only the payload field
// matching Kind is read by the reducer.
type Action struct {
	Kind        ActionKind
	Loading     bool
	Err         string
	User        *models.User
	Restaurants []models.Restaurant
	Categories  []models.Category
	Cart        *models.Cart
}

func SetLoading(loading bool) Action {
	return Action{Kind: KindSetLoading, Loading: loading}
}

func SetError(msg string) Action {
	return Action{Kind: KindSetError, Err: msg}
}

func SetUser(user *models.User) Action {
	return Action{Kind: KindSetUser, User: user}
}

func Logout() Action {
	return Action{Kind: KindLogout}
}

func SetRestaurants(list []models.Restaurant) Action {
	return Action{Kind: KindSetRestaurants, Restaurants: list}
}

func SetCategories(list []models.Category) Action {
	return Action{Kind: KindSetCategories, Categories: list}
}

func SetCart(cart *models.Cart) Action {
	return Action{Kind: KindSetCart, Cart: cart}
}

func AddToCart(cart *models.Cart) Action {
	return Action{Kind: KindAddToCart, Cart: cart}
}

func RemoveFromCart(cart *models.Cart) Action {
	return Action{Kind: KindRemoveFromCart, Cart: cart}
}

func ClearCart() Action {
	return Action{Kind: KindClearCart}
}
