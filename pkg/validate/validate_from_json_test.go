package validate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunvolt24/order_rules/pkg/validate"
	"github.com/stretchr/testify/require"
)

func TestValidateOrderFromJSON(t *testing.T) {
	ctx := context.Background()
	v := validate.NewOrderValidator()

	tests := []struct {
		name    string
		raw     string
		wantErr error
		total   string
		items   int
	}{
		{name: "string total", raw: `{"total":"150.00","items_count":3}`, total: "150.00", items: 3},
		{name: "number total", raw: `{"total":75.5,"items_count":1}`, total: "75.50", items: 1},
		{name: "with id", raw: `{"id":9,"total":"200","items_count":5}`, total: "200.00", items: 5},
		{name: "unknown field", raw: `{"total":"1","items_count":1,"currency":"RUB"}`, wantErr: validate.ErrInvalidJSON},
		{name: "trailing data", raw: `{"total":"1","items_count":1}{}`, wantErr: validate.ErrInvalidJSON},
		{name: "not json", raw: `total=1`, wantErr: validate.ErrInvalidJSON},
		{name: "bad decimal", raw: `{"total":"abc","items_count":1}`, wantErr: validate.ErrInvalidJSON},
		{name: "negative total", raw: `{"total":"-1.00","items_count":1}`, wantErr: validate.ErrInvalidOrder},
		{name: "no items", raw: `{"total":"1.00"}`, wantErr: validate.ErrInvalidOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := validate.ValidateOrderFromJSON(ctx, v, []byte(tt.raw))
			if tt.wantErr != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				require.Nil(t, order)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.total, order.Total.StringFixed(2))
			require.Equal(t, tt.items, order.ItemsCount)
		})
	}
}
