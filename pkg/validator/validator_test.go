package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type priced struct {
	Name       string          `validate:"required"`
	Price      decimal.Decimal `validate:"gt=0"`
	Commission decimal.Decimal `validate:"gte=0,lte=100"`
	OwnerID    uuid.UUID       `validate:"uuid_required"`
}

func TestValidateStruct(t *testing.T) {
	owner := uuid.New()
	tests := []struct {
		name    string
		in      priced
		wantTag string
	}{
		{"valid", priced{"Cut", decimal.NewFromInt(10), decimal.NewFromInt(15), owner}, ""},
		{"missing name", priced{"", decimal.NewFromInt(10), decimal.Zero, owner}, "required"},
		{"zero price", priced{"Cut", decimal.Zero, decimal.Zero, owner}, "gt"},
		{"commission over 100", priced{"Cut", decimal.NewFromInt(1), decimal.NewFromInt(101), owner}, "lte"},
		{"nil owner", priced{"Cut", decimal.NewFromInt(1), decimal.Zero, uuid.Nil}, "uuid_required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(&tt.in)
			if tt.wantTag == "" {
				if len(errs) != 0 {
					t.Fatalf("unexpected errors: %+v", errs[0])
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("expected %s error", tt.wantTag)
			}
			if errs[0].Tag != tt.wantTag {
				t.Fatalf("got tag %q, want %q", errs[0].Tag, tt.wantTag)
			}
		})
	}
}
