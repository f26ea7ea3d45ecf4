package store

// Reduce returns the state that follows s after applying a. It never
// mutates s. Unknown kinds return s unchanged.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case KindSetLoading:
		s.Loading = a.Loading
	case KindSetError:
		s.Error = a.Err
		s.Loading = false
	case KindSetUser:
		s.User = a.User
		s.IsAuthenticated = a.User != nil
		s.Loading = false
		s.Error = ""
	case KindLogout:
		s.User = nil
		s.IsAuthenticated = false
		s.Cart = nil
		s.Loading = false
		s.Error = ""
	case KindSetRestaurants:
		s.Restaurants = a.Restaurants
		s.Loading = false
		s.Error = ""
	case KindSetCategories:
		s.Categories = a.Categories
		s.Loading = false
	case KindSetCart, KindAddToCart, KindRemoveFromCart:
		s.Cart = a.Cart
		s.Loading = false
		s.Error = ""
	case KindClearCart:
		s.Cart = nil
		s.Loading = false
		s.Error = ""
	}
	return s
}
