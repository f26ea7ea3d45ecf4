package mockapi

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/internal/repositories"
	"github.com/wbonfim/DeliveryApp/internal/services"
)

// SeedPassword is the password of every fixture account.
const SeedPassword = "123456"

type repos struct {
	users       repositories.UserRepository
	categories  repositories.CategoryRepository
	restaurants repositories.RestaurantRepository
	products    repositories.ProductRepository
	carts       repositories.CartRepository
	orders      repositories.OrderRepository
	reviews     repositories.ReviewRepository
}

func newRepos() *repos {
	return &repos{
		users:       repositories.NewUserRepository(),
		categories:  repositories.NewCategoryRepository(),
		restaurants: repositories.NewRestaurantRepository(),
		products:    repositories.NewProductRepository(),
		carts:       repositories.NewCartRepository(),
		orders:      repositories.NewOrderRepository(),
		reviews:     repositories.NewReviewRepository(),
	}
}

type seedRestaurant struct {
	name, description, phone, email   string
	street, number, neighborhood, zip string
	fee, minimum                      string
	deliveryTime                      int
	rating                            float64
	reviews                           int
	category                          string
	products                          []seedProduct
}

type seedProduct struct {
	name, description, price string
}

var seedCategories = []models.Category{
	{Name: "Lanches", Description: "Hambúrgueres, sanduíches e lanches"},
	{Name: "Pizza", Description: "Pizzas tradicionais e especiais"},
	{Name: "Japonesa", Description: "Sushi, sashimi e comida japonesa"},
	{Name: "Italiana", Description: "Massas, risotos e pratos italianos"},
	{Name: "Brasileira", Description: "Pratos típicos brasileiros"},
	{Name: "Doces", Description: "Sobremesas, bolos e doces"},
	{Name: "Bebidas", Description: "Refrigerantes, sucos e bebidas"},
}

var seedUsers = []models.User{
	{Username: "admin", Email: "admin@delivery.com", FullName: "Administrador", UserType: "admin"},
	{Username: "cliente1", Email: "cliente1@email.com", FullName: "João Silva", UserType: "customer", Phone: "(11) 99999-1111"},
	{Username: "cliente2", Email: "cliente2@email.com", FullName: "Maria Santos", UserType: "customer", Phone: "(11) 99999-2222"},
	{Username: "restaurante1", Email: "restaurante1@email.com", FullName: "Dono do Burger King", UserType: "restaurant", Phone: "(11) 99999-3333"},
	{Username: "restaurante2", Email: "restaurante2@email.com", FullName: "Dono da Pizzaria", UserType: "restaurant", Phone: "(11) 99999-4444"},
}

var seedRestaurants = []seedRestaurant{
	{
		name:        "Burger Palace",
		description: "Os melhores hambúrgueres da cidade com ingredientes frescos e selecionados",
		phone:       "(11) 3333-1111", email: "contato@burgerpalace.com",
		street: "Rua dos Hambúrgueres", number: "100", neighborhood: "Vila Madalena", zip: "05433-000",
		fee: "5.90", minimum: "25.00", deliveryTime: 35, rating: 4.5, reviews: 150,
		category: "Lanches",
		products: []seedProduct{
			{"Big Burger", "Hambúrguer duplo com queijo, alface, tomate e molho especial", "24.90"},
			{"Chicken Burger", "Hambúrguer de frango grelhado com maionese temperada", "19.90"},
			{"Veggie Burger", "Hambúrguer vegetariano com quinoa e legumes", "22.90"},
			{"Batata Frita", "Batatas fritas crocantes temperadas", "12.90"},
			{"Onion Rings", "Anéis de cebola empanados e fritos", "14.90"},
			{"Coca-Cola", "Refrigerante Coca-Cola 350ml", "5.90"},
		},
	},
	{
		name:        "Pizzaria Bella Napoli",
		description: "Pizzas artesanais com massa fina e ingredientes importados da Itália",
		phone:       "(11) 3333-2222", email: "contato@bellanapoli.com",
		street: "Rua da Pizza", number: "200", neighborhood: "Moema", zip: "04567-000",
		fee: "7.50", minimum: "30.00", deliveryTime: 45, rating: 4.8, reviews: 200,
		category: "Pizza",
		products: []seedProduct{
			{"Pizza Margherita", "Molho de tomate, mussarela, manjericão e azeite", "32.90"},
			{"Pizza Pepperoni", "Molho de tomate, mussarela e pepperoni", "36.90"},
			{"Pizza Quatro Queijos", "Mussarela, gorgonzola, parmesão e provolone", "38.90"},
			{"Pizza Chocolate", "Chocolate ao leite com morangos", "29.90"},
		},
	},
	{
		name:        "Sushi Zen",
		description: "Culinária japonesa autêntica com peixes frescos e pratos tradicionais",
		phone:       "(11) 3333-3333", email: "contato@sushizen.com",
		street: "Rua Japão", number: "300", neighborhood: "Liberdade", zip: "01503-000",
		fee: "8.90", minimum: "40.00", deliveryTime: 40, rating: 4.7, reviews: 120,
		category: "Japonesa",
		products: []seedProduct{
			{"Combo Sushi 20 peças", "Variado com salmão, atum e peixe branco", "45.90"},
			{"Sashimi Salmão", "8 fatias de salmão fresco", "28.90"},
			{"Hot Philadelphia", "Salmão, cream cheese e cebolinha", "24.90"},
		},
	},
	{
		name:        "Pasta & Amore",
		description: "Massas frescas e molhos especiais da tradição italiana",
		phone:       "(11) 3333-4444", email: "contato@pastaamore.com",
		street: "Rua Itália", number: "400", neighborhood: "Bixiga", zip: "01327-000",
		fee: "6.50", minimum: "28.00", deliveryTime: 30, rating: 4.6, reviews: 180,
		category: "Italiana",
		products: []seedProduct{
			{"Spaghetti Carbonara", "Massa com bacon, ovos, queijo e pimenta", "26.90"},
			{"Lasanha Bolonhesa", "Lasanha tradicional com molho bolonhesa", "29.90"},
			{"Risotto de Camarão", "Risotto cremoso com camarões grelhados", "34.90"},
		},
	},
	{
		name:        "Doce Tentação",
		description: "Bolos, tortas e sobremesas irresistíveis feitas com muito carinho",
		phone:       "(11) 3333-5555", email: "contato@docetentacao.com",
		street: "Rua dos Doces", number: "500", neighborhood: "Jardins", zip: "01404-000",
		fee: "4.90", minimum: "20.00", deliveryTime: 25, rating: 4.9, reviews: 300,
		category: "Doces",
		products: []seedProduct{
			{"Bolo de Chocolate", "Bolo de chocolate com cobertura de brigadeiro", "18.90"},
			{"Torta de Morango", "Torta com creme e morangos frescos", "22.90"},
			{"Cheesecake", "Cheesecake cremoso com calda de frutas vermelhas", "16.90"},
		},
	},
}

// seed loads the fixture dataset. IDs are assigned in declaration order,
// so Burger Palace is restaurant 1 and Big Burger is product 1.
func seed(ctx context.Context, r *repos) error {
	categoryIDs := make(map[string]int64, len(seedCategories))
	for _, c := range seedCategories {
		c := c
		c.IsActive = true
		if err := r.categories.Create(ctx, &c); err != nil {
			return fmt.Errorf("seed category %s: %w", c.Name, err)
		}
		categoryIDs[c.Name] = c.ID
	}

	hash, err := services.HashPassword(SeedPassword)
	if err != nil {
		return fmt.Errorf("seed password: %w", err)
	}
	for _, u := range seedUsers {
		u := u
		u.IsActive = true
		u.PasswordHash = hash
		if err := r.users.Create(ctx, &u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}

	for _, sr := range seedRestaurants {
		categoryID := categoryIDs[sr.category]
		restaurant := &models.Restaurant{
			Name:        sr.name,
			Description: sr.description,
			Phone:       sr.phone,
			Email:       sr.email,
			Address: &models.Address{
				Street:       sr.street,
				Number:       sr.number,
				Neighborhood: sr.neighborhood,
				City:         "São Paulo",
				State:        "SP",
				ZipCode:      sr.zip,
			},
			IsOnline:     true,
			IsActive:     true,
			DeliveryFee:  decimal.RequireFromString(sr.fee),
			MinimumOrder: decimal.RequireFromString(sr.minimum),
			DeliveryTime: sr.deliveryTime,
			Rating:       sr.rating,
			TotalReviews: sr.reviews,
			CategoryID:   &categoryID,
		}
		if err := r.restaurants.Create(ctx, restaurant); err != nil {
			return fmt.Errorf("seed restaurant %s: %w", sr.name, err)
		}

		for _, sp := range sr.products {
			product := &models.Product{
				RestaurantID:    restaurant.ID,
				Name:            sp.name,
				Description:     sp.description,
				Price:           decimal.RequireFromString(sp.price),
				IsAvailable:     true,
				IsActive:        true,
				PreparationTime: 15,
			}
			if err := r.products.Create(ctx, product); err != nil {
				return fmt.Errorf("seed product %s: %w", sp.name, err)
			}
		}
	}
	return nil
}
