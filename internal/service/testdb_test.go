package service

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"barber-pos-api/internal/model"
	"barber-pos-api/internal/repository"
	"barber-pos-api/internal/ws"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seqIDs hands out 1, 2, 3, ...
type seqIDs struct{ n int64 }

func (s *seqIDs) NextID() int64 { return atomic.AddInt64(&s.n, 1) }

type recordedEvents struct {
	mu     sync.Mutex
	events []ws.Event
}

func (r *recordedEvents) Publish(evt ws.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recordedEvents) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}

type fixture struct {
	db           *gorm.DB
	events       *recordedEvents
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	employeeRepo repository.EmployeeRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	userRepo     repository.UserRepository
	dataRepo     repository.DataRepository
	recorder     TransactionRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	f := &fixture{
		db:           db,
		events:       &recordedEvents{},
		categoryRepo: repository.NewCategoryRepo(db),
		productRepo:  repository.NewProductRepo(db),
		employeeRepo: repository.NewEmployeeRepo(db),
		saleRepo:     repository.NewSaleRepo(db),
		purchaseRepo: repository.NewPurchaseRepo(db),
		userRepo:     repository.NewUserRepo(db),
		dataRepo:     repository.NewDataRepo(db),
	}
	f.recorder = NewTransactionRecorder(db, &seqIDs{}, f.saleRepo, f.purchaseRepo, f.productRepo, f.employeeRepo, f.events, zerolog.Nop())
	return f
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (f *fixture) product(t *testing.T, name, price string) *model.Product {
	t.Helper()
	p := &model.Product{Name: name, Price: dec(price)}
	if err := f.productRepo.Create(p); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func (f *fixture) employee(t *testing.T, name, phone, commission string) *model.Employee {
	t.Helper()
	e := &model.Employee{Name: name, Phone: phone, Salary: dec("1000"), Commission: dec(commission)}
	if err := f.employeeRepo.Create(e); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return e
}

func (f *fixture) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", m, err)
	}
	return n
}

var testActor = Actor{UserID: "u-1", Username: "cashier"}
