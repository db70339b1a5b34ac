package service

import (
	"fmt"
	"strings"

	"barber-pos-api/internal/model"
	"barber-pos-api/internal/repository"
	"barber-pos-api/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"max=20"`
}

type CategoryUpdateRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=100"`
	Description *string `json:"description"`
	Color       *string `json:"color" validate:"omitnil,min=1,max=20"`
}

func (r *CategoryUpdateRequest) Patch() model.Patch {
	p := model.Patch{}
	model.Set(p, "name", r.Name)
	model.Set(p, "description", r.Description)
	model.Set(p, "color", r.Color)
	return p
}

type ProductRequest struct {
	Name       string          `json:"name" validate:"required,max=255"`
	Price      decimal.Decimal `json:"price" validate:"gt=0"`
	Barcode    *string         `json:"barcode" validate:"omitempty,max=100"`
	CategoryID *uuid.UUID      `json:"category_id"`
	Stock      int             `json:"stock" validate:"gte=0"`
}

type ProductUpdateRequest struct {
	Name       *string          `json:"name" validate:"omitnil,min=1,max=255"`
	Price      *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	Barcode    *string          `json:"barcode" validate:"omitempty,max=100"`
	CategoryID *uuid.UUID       `json:"category_id"`
	Stock      *int             `json:"stock" validate:"omitempty,gte=0"`
}

// Patch clears the barcode on "" and the category on the nil UUID.
func (r *ProductUpdateRequest) Patch() model.Patch {
	p := model.Patch{}
	model.Set(p, "name", r.Name)
	model.Set(p, "price", r.Price)
	model.Set(p, "stock", r.Stock)
	if r.Barcode != nil {
		p["barcode"] = normalizeBarcode(r.Barcode)
	}
	if r.CategoryID != nil {
		if *r.CategoryID == uuid.Nil {
			p["category_id"] = nil
		} else {
			p["category_id"] = *r.CategoryID
		}
	}
	return p
}

func normalizeBarcode(b *string) *string {
	if b == nil {
		return nil
	}
	v := strings.TrimSpace(*b)
	if v == "" {
		return nil
	}
	return &v
}

// trimmed trims a patch value in place so update names match create names.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

type CatalogService interface {
	GetCategories() ([]model.Category, error)
	GetCategory(id uuid.UUID) (*model.Category, error)
	CreateCategory(req *CategoryRequest, actor Actor) (*model.Category, error)
	UpdateCategory(id uuid.UUID, req *CategoryUpdateRequest, actor Actor) (*model.Category, error)
	DeleteCategory(id uuid.UUID, actor Actor) error

	GetProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetProductByBarcode(barcode string) (*model.Product, error)
	CreateProduct(req *ProductRequest, actor Actor) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductUpdateRequest, actor Actor) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor Actor) error
}

type catalogService struct {
	db           *gorm.DB
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	events       EventPublisher
}

func NewCatalogService(db *gorm.DB, categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, events EventPublisher) CatalogService {
	return &catalogService{
		db:           db,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		events:       events,
	}
}

func (s *catalogService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) GetCategory(id uuid.UUID) (*model.Category, error) {
	c, err := s.categoryRepo.FindByID(id)
	return c, mapNotFound(err, ErrCategoryNotFound)
}

func (s *catalogService) CreateCategory(req *CategoryRequest, actor Actor) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}
	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = model.DefaultCategoryColor
	}
	category := &model.Category{Name: req.Name, Description: req.Description, Color: color}
	category.CreatedBy = actor.Username
	category.UpdatedBy = actor.Username

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, mapDuplicate(err, ErrCategoryExists)
	}
	s.catalogEvent("category_created", category, actor, fmt.Sprintf("%s created category '%s'", actor.Username, category.Name))
	return category, nil
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *CategoryUpdateRequest, actor Actor) (*model.Category, error) {
	req.Name = trimmed(req.Name)
	req.Color = trimmed(req.Color)
	if err := validate(req); err != nil {
		return nil, err
	}
	patch := req.Patch()
	patch["updated_by"] = actor.Username
	if err := s.categoryRepo.Update(id, patch); err != nil {
		return nil, mapDuplicate(mapNotFound(err, ErrCategoryNotFound), ErrCategoryExists)
	}
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrCategoryNotFound)
	}
	s.catalogEvent("category_updated", category, actor, fmt.Sprintf("%s updated category '%s'", actor.Username, category.Name))
	return category, nil
}

// DeleteCategory refuses while any product still references the category.
func (s *catalogService) DeleteCategory(id uuid.UUID, actor Actor) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.categoryRepo.WithTx(tx)
		if _, err := repo.FindByID(id); err != nil {
			return mapNotFound(err, ErrCategoryNotFound)
		}
		n, err := repo.CountProducts(id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrCategoryInUse
		}
		return repo.Delete(id)
	})
	if err != nil {
		return mapForeignKey(mapNotFound(err, ErrCategoryNotFound), ErrCategoryInUse)
	}
	s.catalogEvent("category_deleted", idPayload(id), actor, "")
	return nil
}

func (s *catalogService) GetProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	p, err := s.productRepo.FindByID(id)
	return p, mapNotFound(err, ErrProductNotFound)
}

func (s *catalogService) GetProductByBarcode(barcode string) (*model.Product, error) {
	p, err := s.productRepo.FindByBarcode(strings.TrimSpace(barcode))
	return p, mapNotFound(err, ErrProductNotFound)
}

func (s *catalogService) CreateProduct(req *ProductRequest, actor Actor) (*model.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := s.checkCategory(req.CategoryID); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:       req.Name,
		Price:      req.Price,
		Barcode:    normalizeBarcode(req.Barcode),
		CategoryID: req.CategoryID,
		Stock:      req.Stock,
	}
	product.CreatedBy = actor.Username
	product.UpdatedBy = actor.Username

	if err := s.productRepo.Create(product); err != nil {
		return nil, mapForeignKey(mapDuplicate(err, ErrBarcodeExists), ErrCategoryNotFound)
	}
	created, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		return nil, err
	}
	s.catalogEvent("product_created", created, actor, fmt.Sprintf("%s created product '%s'", actor.Username, created.Name))
	return created, nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *ProductUpdateRequest, actor Actor) (*model.Product, error) {
	req.Name = trimmed(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.CategoryID != nil && *req.CategoryID != uuid.Nil {
		if err := s.checkCategory(req.CategoryID); err != nil {
			return nil, err
		}
	}
	patch := req.Patch()
	patch["updated_by"] = actor.Username
	if err := s.productRepo.Update(id, patch); err != nil {
		return nil, mapForeignKey(mapDuplicate(mapNotFound(err, ErrProductNotFound), ErrBarcodeExists), ErrCategoryNotFound)
	}
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrProductNotFound)
	}
	s.catalogEvent("product_updated", product, actor, fmt.Sprintf("%s updated product '%s'", actor.Username, product.Name))
	return product, nil
}

// DeleteProduct refuses while sale or purchase lines reference the product.
func (s *catalogService) DeleteProduct(id uuid.UUID, actor Actor) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		if _, err := repo.FindByID(id); err != nil {
			return mapNotFound(err, ErrProductNotFound)
		}
		n, err := repo.CountLineItems(id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrProductInUse
		}
		return repo.Delete(id)
	})
	if err != nil {
		return mapForeignKey(mapNotFound(err, ErrProductNotFound), ErrProductInUse)
	}
	s.catalogEvent("product_deleted", idPayload(id), actor, "")
	return nil
}

func (s *catalogService) checkCategory(id *uuid.UUID) error {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	_, err := s.categoryRepo.FindByID(*id)
	return mapNotFound(err, ErrCategoryNotFound)
}

func (s *catalogService) catalogEvent(action string, data interface{}, actor Actor, msg string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ws.Event{Type: "catalog", Action: action, Data: data, User: actor.Username, Message: msg})
}
