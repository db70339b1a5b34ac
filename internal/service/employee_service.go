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

type EmployeeRequest struct {
	Name       string          `json:"name" validate:"required,max=255"`
	Phone      string          `json:"phone" validate:"required,max=30"`
	Salary     decimal.Decimal `json:"salary" validate:"gte=0"`
	Commission decimal.Decimal `json:"commission" validate:"gte=0,lte=100"`
}

type EmployeeUpdateRequest struct {
	Name       *string          `json:"name" validate:"omitnil,min=1,max=255"`
	Phone      *string          `json:"phone" validate:"omitnil,min=1,max=30"`
	Salary     *decimal.Decimal `json:"salary" validate:"omitempty,gte=0"`
	Commission *decimal.Decimal `json:"commission" validate:"omitempty,gte=0,lte=100"`
}

func (r *EmployeeUpdateRequest) Patch() model.Patch {
	p := model.Patch{}
	model.Set(p, "name", r.Name)
	model.Set(p, "phone", r.Phone)
	model.Set(p, "salary", r.Salary)
	model.Set(p, "commission", r.Commission)
	return p
}

// CommissionPrice is the customer price of one product when served by one employee.
type CommissionPrice struct {
	EmployeeID     uuid.UUID       `json:"employee_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	BasePrice      decimal.Decimal `json:"base_price"`
	Commission     decimal.Decimal `json:"commission"`
	FinalPrice     decimal.Decimal `json:"final_price"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

type EmployeeService interface {
	GetEmployees() ([]model.Employee, error)
	GetEmployee(id uuid.UUID) (*model.Employee, error)
	CreateEmployee(req *EmployeeRequest, actor Actor) (*model.Employee, error)
	UpdateEmployee(id uuid.UUID, req *EmployeeUpdateRequest, actor Actor) (*model.Employee, error)
	DeleteEmployee(id uuid.UUID, actor Actor) error
	PriceFor(employeeID, productID uuid.UUID) (*CommissionPrice, error)
}

type employeeService struct {
	db           *gorm.DB
	employeeRepo repository.EmployeeRepository
	productRepo  repository.ProductRepository
	events       EventPublisher
}

func NewEmployeeService(db *gorm.DB, employeeRepo repository.EmployeeRepository, productRepo repository.ProductRepository, events EventPublisher) EmployeeService {
	return &employeeService{db: db, employeeRepo: employeeRepo, productRepo: productRepo, events: events}
}

func (s *employeeService) GetEmployees() ([]model.Employee, error) {
	return s.employeeRepo.FindAll()
}

func (s *employeeService) GetEmployee(id uuid.UUID) (*model.Employee, error) {
	e, err := s.employeeRepo.FindByID(id)
	return e, mapNotFound(err, ErrEmployeeNotFound)
}

func (s *employeeService) CreateEmployee(req *EmployeeRequest, actor Actor) (*model.Employee, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validate(req); err != nil {
		return nil, err
	}
	employee := &model.Employee{
		Name:       req.Name,
		Phone:      req.Phone,
		Salary:     req.Salary,
		Commission: req.Commission,
	}
	employee.CreatedBy = actor.Username
	employee.UpdatedBy = actor.Username
	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, mapDuplicate(err, ErrPhoneExists)
	}
	s.event("employee_created", employee, actor, fmt.Sprintf("%s added employee '%s'", actor.Username, employee.Name))
	return employee, nil
}

func (s *employeeService) UpdateEmployee(id uuid.UUID, req *EmployeeUpdateRequest, actor Actor) (*model.Employee, error) {
	req.Name = trimmed(req.Name)
	req.Phone = trimmed(req.Phone)
	if err := validate(req); err != nil {
		return nil, err
	}
	patch := req.Patch()
	patch["updated_by"] = actor.Username
	if err := s.employeeRepo.Update(id, patch); err != nil {
		return nil, mapDuplicate(mapNotFound(err, ErrEmployeeNotFound), ErrPhoneExists)
	}
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrEmployeeNotFound)
	}
	s.event("employee_updated", employee, actor, "")
	return employee, nil
}

// DeleteEmployee refuses while any sale references the employee.
func (s *employeeService) DeleteEmployee(id uuid.UUID, actor Actor) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.employeeRepo.WithTx(tx)
		if _, err := repo.FindByID(id); err != nil {
			return mapNotFound(err, ErrEmployeeNotFound)
		}
		n, err := repo.CountSales(id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrEmployeeInUse
		}
		return repo.Delete(id)
	})
	if err != nil {
		return mapForeignKey(mapNotFound(err, ErrEmployeeNotFound), ErrEmployeeInUse)
	}
	s.event("employee_deleted", idPayload(id), actor, "")
	return nil
}

func (s *employeeService) PriceFor(employeeID, productID uuid.UUID) (*CommissionPrice, error) {
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		return nil, mapNotFound(err, ErrEmployeeNotFound)
	}
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, mapNotFound(err, ErrProductNotFound)
	}
	return &CommissionPrice{
		EmployeeID:     employee.ID,
		ProductID:      product.ID,
		BasePrice:      product.Price,
		Commission:     employee.CommissionOn(product.Price),
		FinalPrice:     employee.PriceWithCommission(product.Price),
		CommissionRate: employee.Commission,
	}, nil
}

func (s *employeeService) event(action string, data interface{}, actor Actor, msg string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ws.Event{Type: "employee", Action: action, Data: data, User: actor.Username, Message: msg})
}
