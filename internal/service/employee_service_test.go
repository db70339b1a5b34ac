package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestEmployeeLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.db, f.employeeRepo, f.productRepo, f.events)

	e, err := svc.CreateEmployee(&EmployeeRequest{Name: "Ali", Phone: "0811", Salary: dec("1500"), Commission: dec("10")}, testActor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateEmployee(&EmployeeRequest{Name: "Budi", Phone: "0811"}, testActor); !errors.Is(err, ErrPhoneExists) {
		t.Fatalf("expected phone conflict, got %v", err)
	}
	if _, err := svc.CreateEmployee(&EmployeeRequest{Name: "Cici", Phone: "0812", Commission: dec("101")}, testActor); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	salary := dec("2000")
	updated, err := svc.UpdateEmployee(e.ID, &EmployeeUpdateRequest{Salary: &salary}, testActor)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Salary.Equal(salary) || !updated.Commission.Equal(dec("10")) {
		t.Fatalf("unexpected employee: %+v", updated)
	}
	if _, err := svc.UpdateEmployee(uuid.New(), &EmployeeUpdateRequest{Salary: &salary}, testActor); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateEmployeeTrimsFields(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.db, f.employeeRepo, f.productRepo, f.events)

	if _, err := svc.CreateEmployee(&EmployeeRequest{Name: "Ali", Phone: "0811"}, testActor); err != nil {
		t.Fatal(err)
	}
	e, err := svc.CreateEmployee(&EmployeeRequest{Name: "Budi", Phone: "0812"}, testActor)
	if err != nil {
		t.Fatal(err)
	}

	phone := " 0811 "
	if _, err := svc.UpdateEmployee(e.ID, &EmployeeUpdateRequest{Phone: &phone}, testActor); !errors.Is(err, ErrPhoneExists) {
		t.Fatalf("expected phone conflict after trim, got %v", err)
	}

	name := " Budi S "
	updated, err := svc.UpdateEmployee(e.ID, &EmployeeUpdateRequest{Name: &name}, testActor)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Budi S" {
		t.Fatalf("name not trimmed: %q", updated.Name)
	}
}

func TestEmployeePriceFor(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.db, f.employeeRepo, f.productRepo, f.events)
	e := f.employee(t, "Ali", "0811", "10")
	p := f.product(t, "Cut", "50")

	price, err := svc.PriceFor(e.ID, p.ID)
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if !price.Commission.Equal(dec("5")) || !price.FinalPrice.Equal(dec("55")) {
		t.Fatalf("unexpected price: %+v", price)
	}
	if _, err := svc.PriceFor(e.ID, uuid.New()); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
}

func TestDeleteEmployeeWithSales(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.db, f.employeeRepo, f.productRepo, f.events)
	busy := f.employee(t, "Ali", "0811", "0")
	idle := f.employee(t, "Budi", "0812", "0")
	p := f.product(t, "A", "5")
	if _, err := f.recorder.RecordSale(context.Background(), saleRequest("INV-1", busy.ID, "5",
		SaleLineRequest{ProductID: p.ID, Quantity: 1, UnitPrice: dec("5")}), testActor); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteEmployee(busy.ID, testActor); !errors.Is(err, ErrEmployeeInUse) {
		t.Fatalf("expected in use, got %v", err)
	}
	if err := svc.DeleteEmployee(idle.ID, testActor); err != nil {
		t.Fatalf("delete idle: %v", err)
	}
	if _, err := svc.GetEmployee(idle.ID); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
