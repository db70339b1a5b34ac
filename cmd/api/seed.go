package main

import (
	"barber-pos-api/internal/model"
	"barber-pos-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// seedAdmin creates the default administrator when the users table is empty
func seedAdmin(userRepo repository.UserRepository, log zerolog.Logger) {
	n, err := userRepo.Count()
	if err != nil {
		log.Warn().Err(err).Msg("count users")
		return
	}
	if n > 0 {
		return
	}

	admin := &model.User{
		Username: defaultAdminUsername,
		Email:    "admin@example.com",
		FullName: "Administrator",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := admin.SetPassword(defaultAdminPassword); err != nil {
		log.Warn().Err(err).Msg("hash admin password")
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Warn().Err(err).Msg("create admin user")
		return
	}
	log.Info().Str("username", defaultAdminUsername).Msg("default admin user created, change its password")
}

type demoProduct struct {
	name     string
	price    string
	barcode  string
	category int
	stock    int
}

var (
	demoCategories = []model.Category{
		{Name: "Haircut", Description: "Cuts and styling", Color: "#3B82F6"},
		{Name: "Shave", Description: "Beard and shave services", Color: "#10B981"},
		{Name: "Products", Description: "Retail grooming products", Color: "#F59E0B"},
	}
	demoProducts = []demoProduct{
		{name: "Classic Cut", price: "50000", category: 0},
		{name: "Kids Cut", price: "35000", category: 0},
		{name: "Hot Towel Shave", price: "40000", category: 1},
		{name: "Pomade", price: "85000", barcode: "8991234567001", category: 2, stock: 24},
	}
)

// seedDemo fills an empty catalog with a few categories and products
func seedDemo(db *gorm.DB, categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, log zerolog.Logger) {
	existing, err := categoryRepo.FindAll()
	if err != nil || len(existing) > 0 {
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		categories := categoryRepo.WithTx(tx)
		products := productRepo.WithTx(tx)

		ids := make([]uuid.UUID, len(demoCategories))
		for i := range demoCategories {
			c := demoCategories[i]
			c.CreatedBy = "seed"
			c.UpdatedBy = "seed"
			if err := categories.Create(&c); err != nil {
				return err
			}
			ids[i] = c.ID
		}
		for _, d := range demoProducts {
			p := &model.Product{
				Name:       d.name,
				Price:      decimal.RequireFromString(d.price),
				CategoryID: &ids[d.category],
				Stock:      d.stock,
			}
			if d.barcode != "" {
				barcode := d.barcode
				p.Barcode = &barcode
			}
			p.CreatedBy = "seed"
			p.UpdatedBy = "seed"
			if err := products.Create(p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("seed demo data")
		return
	}
	log.Info().Int("categories", len(demoCategories)).Int("products", len(demoProducts)).Msg("demo data seeded")
}
