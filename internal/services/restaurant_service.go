package services

import (
	"context"

	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/internal/repositories"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type RestaurantService struct {
	restaurantRepo repositories.RestaurantRepository
	productRepo    repositories.ProductRepository
	categoryRepo   repositories.CategoryRepository
}

func NewRestaurantService(
	restaurantRepo repositories.RestaurantRepository,
	productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository,
) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
	}
}

type RestaurantListParams struct {
	Search     string
	CategoryID int64
	Page       int
	PerPage    int
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func pageCount(total, perPage int) int {
	return (total + perPage - 1) / perPage
}

func (s *RestaurantService) List(ctx context.Context, params RestaurantListParams) (*models.RestaurantsResponse, error) {
	page, perPage := normalizePage(params.Page, params.PerPage)

	list, total, err := s.restaurantRepo.List(ctx, repositories.RestaurantFilter{
		Search:     params.Search,
		CategoryID: params.CategoryID,
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
	})
	if err != nil {
		return nil, err
	}

	for i := range list {
		s.attachCategory(ctx, &list[i])
	}

	return &models.RestaurantsResponse{
		Restaurants: list,
		Total:       total,
		Pages:       pageCount(total, perPage),
		CurrentPage: page,
	}, nil
}

// Get returns an active restaurant with its available products.
func (s *RestaurantService) Get(ctx context.Context, id int64) (*models.RestaurantResponse, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil || !restaurant.IsActive {
		return nil, ErrRestaurantNotFound
	}
	s.attachCategory(ctx, restaurant)

	products, err := s.productRepo.GetByRestaurantID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.RestaurantResponse{Restaurant: restaurant, Products: products}, nil
}

func (s *RestaurantService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *RestaurantService) attachCategory(ctx context.Context, r *models.Restaurant) {
	if r.CategoryID == nil {
		return
	}
	if c, err := s.categoryRepo.GetByID(ctx, *r.CategoryID); err == nil {
		r.Category = c
	}
}
