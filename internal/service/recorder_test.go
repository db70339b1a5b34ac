package service

import (
	"context"
	"errors"
	"testing"

	"barber-pos-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func saleRequest(invoice string, employee uuid.UUID, total string, lines ...SaleLineRequest) *SaleRequest {
	return &SaleRequest{InvoiceNumber: invoice, EmployeeID: employee, TotalAmount: dec(total), Items: lines}
}

func TestRecordSalePersistsHeaderAndLines(t *testing.T) {
	f := newFixture(t)
	shampoo := f.product(t, "Shampoo", "10")
	cut := f.product(t, "Haircut", "25")
	emp := f.employee(t, "Ali", "0811", "0")

	sale, err := f.recorder.RecordSale(context.Background(), saleRequest("INV-1", emp.ID, "45",
		SaleLineRequest{ProductID: shampoo.ID, Quantity: 2, UnitPrice: dec("10")},
		SaleLineRequest{ProductID: cut.ID, Quantity: 1, UnitPrice: dec("25")},
	), testActor)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if sale.ID == 0 || sale.EmployeeName != "Ali" || sale.SellerUser != "cashier" {
		t.Fatalf("unexpected header: %+v", sale)
	}

	stored, err := f.saleRepo.FindByID(sale.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("got %d items", len(stored.Items))
	}
	sum := dec("0")
	for _, it := range stored.Items {
		if it.SaleID != sale.ID {
			t.Errorf("item points at %d", it.SaleID)
		}
		if it.LineID != it.Key().String() {
			t.Errorf("line id %q", it.LineID)
		}
		sum = sum.Add(it.TotalPrice)
	}
	if !sum.Equal(stored.TotalAmount) {
		t.Errorf("items sum to %s, header says %s", sum, stored.TotalAmount)
	}
	if stored.Items[0].ProductName != "Shampoo" || stored.Items[1].ProductName != "Haircut" {
		t.Errorf("line order not preserved: %+v", stored.Items)
	}
	if got := f.events.actions(); len(got) != 1 || got[0] != "sale_recorded" {
		t.Errorf("events: %v", got)
	}
}

func TestRecordSaleRollsBackWhenAnItemFails(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "A", "5")
	p2 := f.product(t, "B", "5")
	emp := f.employee(t, "Ali", "0811", "0")

	// Fail the second item insert
	inserted := 0
	err := f.db.Callback().Create().Before("gorm:create").Register("test:fail_second_item", func(tx *gorm.DB) {
		if tx.Statement.Table == "sale_items" {
			inserted++
			if inserted == 2 {
				tx.AddError(errors.New("disk full"))
			}
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = f.recorder.RecordSale(context.Background(), saleRequest("INV-FAIL", emp.ID, "10",
		SaleLineRequest{ProductID: p1.ID, Quantity: 1, UnitPrice: dec("5")},
		SaleLineRequest{ProductID: p2.ID, Quantity: 1, UnitPrice: dec("5")},
	), testActor)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Message != ErrRecordingFailed.Message {
		t.Fatalf("expected recording failure message, got %v", err)
	}
	if n := f.count(t, &model.Sale{}); n != 0 {
		t.Errorf("sales: got %d rows, want 0", n)
	}
	if n := f.count(t, &model.SaleItem{}); n != 0 {
		t.Errorf("sale items: got %d rows, want 0", n)
	}
	if len(f.events.actions()) != 0 {
		t.Errorf("no event expected on failure")
	}
}

func TestRecordSaleDuplicateInvoice(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "A", "5")
	emp := f.employee(t, "Ali", "0811", "0")
	line := SaleLineRequest{ProductID: p.ID, Quantity: 1, UnitPrice: dec("5")}

	if _, err := f.recorder.RecordSale(context.Background(), saleRequest("INV-1", emp.ID, "5", line), testActor); err != nil {
		t.Fatalf("first: %v", err)
	}
	_, err := f.recorder.RecordSale(context.Background(), saleRequest("INV-1", emp.ID, "5", line), testActor)
	if !errors.Is(err, ErrDuplicateInvoice) {
		t.Fatalf("expected duplicate invoice, got %v", err)
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate invoice should be a conflict")
	}
	if n := f.count(t, &model.Sale{}); n != 1 {
		t.Errorf("got %d sales", n)
	}
	if n := f.count(t, &model.SaleItem{}); n != 1 {
		t.Errorf("got %d items", n)
	}
}

func TestRecordSaleMergesRepeatedProduct(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "A", "5")
	emp := f.employee(t, "Ali", "0811", "0")

	sale, err := f.recorder.RecordSale(context.Background(), saleRequest("INV-1", emp.ID, "25",
		SaleLineRequest{ProductID: p.ID, Quantity: 2, UnitPrice: dec("5")},
		SaleLineRequest{ProductID: p.ID, Quantity: 3, UnitPrice: dec("5")},
	), testActor)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(sale.Items) != 1 || sale.Items[0].Quantity != 5 || !sale.Items[0].TotalPrice.Equal(dec("25")) {
		t.Fatalf("unexpected items: %+v", sale.Items)
	}

	_, err = f.recorder.RecordSale(context.Background(), saleRequest("INV-2", emp.ID, "11",
		SaleLineRequest{ProductID: p.ID, Quantity: 1, UnitPrice: dec("5")},
		SaleLineRequest{ProductID: p.ID, Quantity: 1, UnitPrice: dec("6")},
	), testActor)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for conflicting prices, got %v", err)
	}
}

func TestRecordSaleValidation(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "A", "5")
	emp := f.employee(t, "Ali", "0811", "0")
	good := SaleLineRequest{ProductID: p.ID, Quantity: 1, UnitPrice: dec("5")}

	tests := []struct {
		name string
		req  *SaleRequest
	}{
		{"no items", saleRequest("INV-1", emp.ID, "5")},
		{"blank invoice", saleRequest("   ", emp.ID, "5", good)},
		{"missing employee", saleRequest("INV-1", uuid.Nil, "5", good)},
		{"zero total", saleRequest("INV-1", emp.ID, "0", good)},
		{"zero quantity", saleRequest("INV-1", emp.ID, "5", SaleLineRequest{ProductID: p.ID, Quantity: 0, UnitPrice: dec("5")})},
		{"negative price", saleRequest("INV-1", emp.ID, "5", SaleLineRequest{ProductID: p.ID, Quantity: 1, UnitPrice: dec("-5")})},
		{"missing product id", saleRequest("INV-1", emp.ID, "5", SaleLineRequest{Quantity: 1, UnitPrice: dec("5")})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.recorder.RecordSale(context.Background(), tt.req, testActor)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if n := f.count(t, &model.Sale{}); n != 0 {
		t.Errorf("validation failures wrote %d sales", n)
	}
}

func TestRecordSaleUnknownReferences(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "A", "5")
	emp := f.employee(t, "Ali", "0811", "0")

	_, err := f.recorder.RecordSale(context.Background(), saleRequest("INV-1", uuid.New(), "5",
		SaleLineRequest{ProductID: p.ID, Quantity: 1, UnitPrice: dec("5")}), testActor)
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected employee not found, got %v", err)
	}

	_, err = f.recorder.RecordSale(context.Background(), saleRequest("INV-2", emp.ID, "5",
		SaleLineRequest{ProductID: uuid.New(), Quantity: 1, UnitPrice: dec("5")}), testActor)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
	if n := f.count(t, &model.Sale{}); n != 0 {
		t.Errorf("got %d sales", n)
	}
}

func TestRecordSaleKeepsDeclaredTotal(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "A", "5")
	emp := f.employee(t, "Ali", "0811", "0")

	sale, err := f.recorder.RecordSale(context.Background(), saleRequest("INV-1", emp.ID, "9",
		SaleLineRequest{ProductID: p.ID, Quantity: 2, UnitPrice: dec("5")}), testActor)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !sale.TotalAmount.Equal(dec("9")) {
		t.Fatalf("declared total replaced: %s", sale.TotalAmount)
	}
}

func TestRecordPurchaseResolvesAndCreatesProducts(t *testing.T) {
	f := newFixture(t)
	wax := f.product(t, "Hair Wax", "30")
	barcode := "899100"
	gel := &model.Product{Name: "Gel", Price: dec("20"), Barcode: &barcode}
	if err := f.productRepo.Create(gel); err != nil {
		t.Fatal(err)
	}

	inv, err := f.recorder.RecordPurchase(context.Background(), &PurchaseRequest{
		InvoiceNumber: "PUR-1",
		SupplierName:  "  Supplier A ",
		TotalAmount:   dec("118"),
		Items: []PurchaseLineRequest{
			{ProductID: &wax.ID, Quantity: 2, UnitPrice: dec("15")},
			{Barcode: "899100", Quantity: 4, UnitPrice: dec("10")},
			{ProductName: "hair wax", Quantity: 1, UnitPrice: dec("15")},
			{ProductName: "Beard Oil", SalePrice: dec("45"), Quantity: 1, UnitPrice: dec("33")},
		},
	}, testActor)
	if err != nil {
		t.Fatalf("record purchase: %v", err)
	}
	if inv.SupplierName != "Supplier A" || inv.CreatedBy != "cashier" {
		t.Errorf("header: %+v", inv)
	}
	// "hair wax" by name and wax by id are the same product
	if len(inv.Items) != 3 {
		t.Fatalf("got %d items: %+v", len(inv.Items), inv.Items)
	}
	if inv.Items[0].ProductID != wax.ID || inv.Items[0].Quantity != 3 {
		t.Errorf("wax line: %+v", inv.Items[0])
	}
	if inv.Items[1].ProductID != gel.ID {
		t.Errorf("gel line: %+v", inv.Items[1])
	}

	oil, err := f.productRepo.FindByName("beard oil")
	if err != nil {
		t.Fatalf("beard oil not created: %v", err)
	}
	if !oil.Price.Equal(dec("45")) || oil.Stock != 0 {
		t.Errorf("created product: %+v", oil)
	}
	if inv.Items[2].ProductID != oil.ID {
		t.Errorf("oil line: %+v", inv.Items[2])
	}
	if n := f.count(t, &model.PurchaseItem{}); n != 3 {
		t.Errorf("got %d purchase items", n)
	}
}

func TestRecordPurchaseRollsBackCreatedProducts(t *testing.T) {
	f := newFixture(t)
	_, err := f.recorder.RecordPurchase(context.Background(), &PurchaseRequest{
		InvoiceNumber: "PUR-1",
		SupplierName:  "Supplier",
		TotalAmount:   dec("10"),
		Items: []PurchaseLineRequest{
			{ProductName: "New Thing", Quantity: 1, UnitPrice: dec("5")},
			{ProductID: ptr(uuid.New()), Quantity: 1, UnitPrice: dec("5")},
		},
	}, testActor)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
	if n := f.count(t, &model.Product{}); n != 0 {
		t.Errorf("product created by a failed purchase survived: %d", n)
	}
	if n := f.count(t, &model.PurchaseInvoice{}); n != 0 {
		t.Errorf("got %d invoices", n)
	}
}

func TestRecordPurchaseLineNeedsReference(t *testing.T) {
	f := newFixture(t)
	_, err := f.recorder.RecordPurchase(context.Background(), &PurchaseRequest{
		InvoiceNumber: "PUR-1",
		SupplierName:  "Supplier",
		TotalAmount:   dec("5"),
		Items:         []PurchaseLineRequest{{Quantity: 1, UnitPrice: dec("5")}},
	}, testActor)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRecordPurchaseDuplicateInvoice(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "A", "5")
	req := func() *PurchaseRequest {
		return &PurchaseRequest{
			InvoiceNumber: "PUR-1",
			SupplierName:  "Supplier",
			TotalAmount:   dec("5"),
			Items:         []PurchaseLineRequest{{ProductID: &p.ID, Quantity: 1, UnitPrice: dec("5")}},
		}
	}
	if _, err := f.recorder.RecordPurchase(context.Background(), req(), testActor); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := f.recorder.RecordPurchase(context.Background(), req(), testActor); !errors.Is(err, ErrDuplicateInvoice) {
		t.Fatalf("expected duplicate invoice, got %v", err)
	}
	if n := f.count(t, &model.PurchaseInvoice{}); n != 1 {
		t.Errorf("got %d invoices", n)
	}
}

func ptr[T any](v T) *T { return &v }
