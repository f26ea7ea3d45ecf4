package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/wbonfim/DeliveryApp/internal/forms"
	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/internal/store"
)

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

func idArg(args []string, what string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one %s id", what)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s id %q", what, args[0])
	}
	return id, nil
}

func cmdRestaurants(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("restaurants")
	search := fs.String("search", "", "name or description contains")
	category := fs.String("category", "", "category name")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	list, err := a.store.LoadRestaurants(ctx, nil)
	if err != nil {
		return err
	}
	list = store.FilterRestaurants(list, *search, *category)
	if len(list) == 0 {
		a.printf("No restaurants found.\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tRATING\tTIME\tFEE\tMINIMUM\tOPEN")
	for _, r := range list {
		category := ""
		if r.Category != nil {
			category = r.Category.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%d min\t%s\t%s\t%t\n",
			r.ID, r.Name, category, r.Rating, r.DeliveryTime, money(r.DeliveryFee), money(r.MinimumOrder), r.IsOnline)
	}
	return tw.Flush()
}

func cmdMenu(ctx context.Context, a *app, args []string) error {
	id, err := idArg(args, "restaurant")
	if err != nil {
		return err
	}
	resp, err := a.client.GetRestaurant(ctx, id)
	if err != nil {
		return err
	}

	r := resp.Restaurant
	a.printf("%s (%.1f, %d reviews)\n%s\n\n", r.Name, r.Rating, r.TotalReviews, r.Description)
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tPRICE")
	for _, p := range resp.Products {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Name, money(p.Price))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if err := store.CanOpenRestaurant(a.store.Snapshot(), *r); err != nil {
		a.printf("\nOrdering unavailable: %v\n", err)
	}
	return nil
}

func cmdCategories(_ context.Context, a *app, _ []string) error {
	for _, c := range a.store.Snapshot().Categories {
		a.printf("%d\t%s\n", c.ID, c.Name)
	}
	return nil
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("login")
	var form forms.LoginForm
	fs.StringVar(&form.Email, "email", "", "email")
	fs.StringVar(&form.Password, "password", "", "password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := validationError(form.Validate()); err != nil {
		return err
	}

	user, err := a.store.Login(ctx, form.Credentials())
	if err != nil {
		return err
	}
	a.printf("Welcome, %s!\n", displayName(user))
	if n := store.CartItemCount(a.store.Snapshot()); n > 0 {
		a.printf("You have %d item(s) in your cart.\n", n)
	}
	return nil
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("register")
	var form forms.RegisterForm
	fs.StringVar(&form.FullName, "name", "", "full name")
	fs.StringVar(&form.Username, "username", "", "username (defaults to the email local part)")
	fs.StringVar(&form.Email, "email", "", "email")
	fs.StringVar(&form.Phone, "phone", "", "phone")
	fs.StringVar(&form.Password, "password", "", "password")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "password confirmation")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	form.Phone = forms.FormatPhone(form.Phone)
	if err := validationError(form.Validate()); err != nil {
		return err
	}

	user, err := a.store.Register(ctx, form.Request())
	if err != nil {
		return err
	}
	a.printf("Account created for %s. Log in with %s.\n", displayName(user), user.Email)
	return nil
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out.\n")
	return nil
}

func cmdWhoami(_ context.Context, a *app, _ []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	u := a.store.Snapshot().User
	a.printf("%s <%s> (%s)\n", displayName(u), u.Email, u.UserType)
	return nil
}

func cmdCart(_ context.Context, a *app, _ []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	printCart(a, a.store.Snapshot().Cart)
	return nil
}

func printCart(a *app, cart *models.Cart) {
	if cart == nil || len(cart.Items) == 0 {
		a.printf("Your cart is empty.\n")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tPRODUCT\tQTY\tUNIT\tTOTAL\tNOTES")
	for _, item := range cart.Items {
		name := strconv.FormatInt(item.ProductID, 10)
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n",
			item.ID, name, item.Quantity, money(item.UnitPrice), money(item.TotalPrice), item.Notes)
	}
	fmt.Fprintf(tw, "\t\t%d\t\t%s\t\n", cart.ItemCount(), money(cart.Total))
	_ = tw.Flush()
}

func cmdAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("add")
	product := fs.Int64("product", 0, "product id")
	qty := fs.Int("qty", 1, "quantity")
	notes := fs.String("notes", "", "notes for the kitchen")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	cart, err := a.store.AddToCart(ctx, *product, *qty, *notes)
	if err != nil {
		return err
	}
	printCart(a, cart)
	return nil
}

func cmdRemove(ctx context.Context, a *app, args []string) error {
	id, err := idArg(args, "item")
	if err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := a.store.RemoveFromCart(ctx, id); err != nil {
		return err
	}
	printCart(a, a.store.Snapshot().Cart)
	return nil
}

func cmdClear(ctx context.Context, a *app, _ []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := a.store.ClearCart(ctx); err != nil {
		return err
	}
	a.printf("Cart cleared.\n")
	return nil
}

func cmdOrder(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("order")
	var req models.CreateOrderRequest
	fs.StringVar(&req.PaymentMethod, "payment", models.PaymentPix, "payment method")
	fs.StringVar(&req.Notes, "notes", "", "order notes")
	addr := &req.DeliveryAddress
	fs.StringVar(&addr.Street, "street", "", "street")
	fs.StringVar(&addr.Number, "number", "", "number")
	fs.StringVar(&addr.Complement, "complement", "", "complement")
	fs.StringVar(&addr.Neighborhood, "neighborhood", "", "neighborhood")
	fs.StringVar(&addr.City, "city", "", "city")
	fs.StringVar(&addr.State, "state", "", "state")
	fs.StringVar(&addr.ZipCode, "zip", "", "zip code")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}
	if store.CartItemCount(a.store.Snapshot()) == 0 {
		return errors.New("your cart is empty")
	}

	order, err := a.store.CreateOrder(ctx, req)
	if err != nil {
		return err
	}
	if order == nil {
		a.printf("Order placed.\n")
		return nil
	}
	a.printf("Order %s placed: %s (%s)\n", order.OrderNumber, money(order.Total), order.Status)
	return nil
}

func cmdOrders(ctx context.Context, a *app, _ []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	resp, err := a.client.GetOrders(ctx, nil)
	if err != nil {
		return err
	}
	if len(resp.Orders) == 0 {
		a.printf("No orders yet.\n")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNUMBER\tSTATUS\tPAYMENT\tTOTAL")
	for _, o := range resp.Orders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", o.ID, o.OrderNumber, o.Status, o.PaymentMethod, money(o.Total))
	}
	return tw.Flush()
}

func cmdCancel(ctx context.Context, a *app, args []string) error {
	id, err := idArg(args, "order")
	if err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}
	resp, err := a.client.UpdateOrderStatus(ctx, id, models.OrderStatusCancelled)
	if err != nil {
		return err
	}
	a.printf("Order %s is now %s.\n", resp.Order.OrderNumber, resp.Order.Status)
	return nil
}

func cmdReview(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("review")
	orderID := fs.Int64("order", 0, "order id")
	var review models.ReviewRequest
	fs.IntVar(&review.Rating, "rating", 0, "rating from 1 to 5")
	fs.StringVar(&review.Comment, "comment", "", "comment")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	if _, err := a.client.CreateReview(ctx, *orderID, review); err != nil {
		return err
	}
	a.printf("Thanks for your review!\n")
	return nil
}

func cmdHealth(ctx context.Context, a *app, _ []string) error {
	resp, err := a.client.HealthCheck(ctx)
	if err != nil {
		return err
	}
	a.printf("%s: %s (%s)\n", resp.Service, resp.Status, a.client.BaseURL())
	return nil
}

func displayName(u *models.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
