package repository

import (
	"barber-pos-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	WithTx(tx *gorm.DB) EmployeeRepository
	Create(employee *model.Employee) error
	FindAll() ([]model.Employee, error)
	FindByID(id uuid.UUID) (*model.Employee, error)
	Update(id uuid.UUID, patch model.Patch) error
	CountSales(id uuid.UUID) (int64, error)
	Delete(id uuid.UUID) error
}

type employeeRepo struct {
	db *gorm.DB
}

func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db}
}

func (r *employeeRepo) WithTx(tx *gorm.DB) EmployeeRepository {
	return &employeeRepo{tx}
}

func (r *employeeRepo) Create(employee *model.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepo) FindAll() ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.Order("name").Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) FindByID(id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) Update(id uuid.UUID, patch model.Patch) error {
	return applyPatch[model.Employee](r.db, id, patch)
}

func (r *employeeRepo) CountSales(id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.Model(&model.Sale{}).Where("employee_id = ?", id).Count(&n).Error
	return n, err
}

func (r *employeeRepo) Delete(id uuid.UUID) error {
	return deleteByID[model.Employee](r.db, id)
}
