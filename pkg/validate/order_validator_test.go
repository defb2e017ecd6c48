package validate_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/order_rules/internal/domain"
	"github.com/Gunvolt24/order_rules/pkg/validate"
	"github.com/shopspring/decimal"
)

func validOrder() *domain.Order {
	return &domain.Order{
		Total:      decimal.RequireFromString("150.00"),
		ItemsCount: 3,
	}
}

func TestOrderValidator_Validate(t *testing.T) {
	v := validate.NewOrderValidator()
	ctx := context.Background()

	t.Run("valid order", func(t *testing.T) {
		if err := v.Validate(ctx, validOrder()); err != nil {
			t.Fatalf("expected valid order, got: %v", err)
		}
	})

	t.Run("boundaries are valid", func(t *testing.T) {
		o := &domain.Order{Total: decimal.Zero, ItemsCount: 1}
		if err := v.Validate(ctx, o); err != nil {
			t.Fatalf("zero total and one item must be valid, got: %v", err)
		}
		o.Total = validate.MaxTotal
		if err := v.Validate(ctx, o); err != nil {
			t.Fatalf("max total must be valid, got: %v", err)
		}
	})

	type testCase struct {
		name      string
		makeOrder func() *domain.Order
		msg       string
	}

	cases := []testCase{
		{
			name:      "nil order",
			makeOrder: func() *domain.Order { return nil },
			msg:       "заказ не может быть nil",
		},
		{
			name: "negative total",
			makeOrder: func() *domain.Order {
				o := validOrder()
				o.Total = decimal.RequireFromString("-0.01")
				return o
			},
			msg: "total должен быть неотрицательным",
		},
		{
			name: "too many decimal places",
			makeOrder: func() *domain.Order {
				o := validOrder()
				o.Total = decimal.RequireFromString("10.005")
				return o
			},
			msg: "знаков после запятой",
		},
		{
			name: "total above column limit",
			makeOrder: func() *domain.Order {
				o := validOrder()
				o.Total = decimal.RequireFromString("100000000.00")
				return o
			},
			msg: "total не может превышать 99999999.99",
		},
		{
			name: "zero items",
			makeOrder: func() *domain.Order {
				o := validOrder()
				o.ItemsCount = 0
				return o
			},
			msg: "items_count должен быть не меньше 1",
		},
		{
			name: "negative items",
			makeOrder: func() *domain.Order {
				o := validOrder()
				o.ItemsCount = -4
				return o
			},
			msg: "items_count должен быть не меньше 1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(ctx, tc.makeOrder())
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !errors.Is(err, validate.ErrInvalidOrder) {
				t.Errorf("expected ErrInvalidOrder, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("expected error message to contain %q, got %q", tc.msg, err.Error())
			}
		})
	}
}
