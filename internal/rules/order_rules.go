package rules

import (
	"fmt"

	"github.com/Gunvolt24/order_rules/internal/domain"
	"github.com/shopspring/decimal"
)

// Имена встроенных правил.
const (
	MinTotalRuleName      = "min_total_100"
	MinItemsRuleName      = "min_items_2"
	DivisibleByRuleName   = "divisible_by_5"
	defaultMinItemsThresh = 2
)

var (
	defaultMinTotalThreshold = decimal.RequireFromString("100.00")
	defaultDivisor           = decimal.RequireFromString("5.00")
)

// ---------------------------------------------------------------------------
// min_total_100
// ---------------------------------------------------------------------------

// MinTotalConfig — параметры правила min_total_100.
// Незаданный Threshold (Valid == false) означает значение по умолчанию 100.00; явный 0 сохраняется.
type MinTotalConfig struct {
	Threshold decimal.NullDecimal
}

// MinTotalRule — сумма заказа строго больше порога.
type MinTotalRule struct {
	threshold decimal.Decimal
}

// NewMinTotalRule — конструктор с проверкой конфигурации.
func NewMinTotalRule(cfg MinTotalConfig) (*MinTotalRule, error) {
	threshold := defaultMinTotalThreshold
	if cfg.Threshold.Valid {
		threshold = cfg.Threshold.Decimal
	}
	if threshold.IsNegative() {
		return nil, fmt.Errorf("%w: %s threshold must be non-negative, got %s", ErrInvalidRule, MinTotalRuleName, threshold)
	}
	return &MinTotalRule{threshold: threshold}, nil
}

func (r *MinTotalRule) Name() string { return MinTotalRuleName }

func (r *MinTotalRule) Description() string {
	return "Validates that order total is greater than " + r.threshold.String()
}

func (r *MinTotalRule) Evaluate(order *domain.Order) (bool, error) {
	return order.Total.GreaterThan(r.threshold), nil
}

// ---------------------------------------------------------------------------
// min_items_2
// ---------------------------------------------------------------------------

// MinItemsConfig — параметры правила min_items_2.
// nil Threshold означает значение по умолчанию 2; явный 0 сохраняется.
type MinItemsConfig struct {
	Threshold *int
}

// MinItemsRule — количество позиций не меньше порога.
type MinItemsRule struct {
	threshold int
}

// NewMinItemsRule — конструктор с проверкой конфигурации.
func NewMinItemsRule(cfg MinItemsConfig) (*MinItemsRule, error) {
	threshold := defaultMinItemsThresh
	if cfg.Threshold != nil {
		threshold = *cfg.Threshold
	}
	if threshold < 0 {
		return nil, fmt.Errorf("%w: %s threshold must be non-negative, got %d", ErrInvalidRule, MinItemsRuleName, threshold)
	}
	return &MinItemsRule{threshold: threshold}, nil
}

func (r *MinItemsRule) Name() string { return MinItemsRuleName }

func (r *MinItemsRule) Description() string {
	return fmt.Sprintf("Validates that order has at least %d items", r.threshold)
}

func (r *MinItemsRule) Evaluate(order *domain.Order) (bool, error) {
	return order.ItemsCount >= r.threshold, nil
}

// ---------------------------------------------------------------------------
// divisible_by_5
// ---------------------------------------------------------------------------

// DivisibleByConfig — параметры правила divisible_by_5.
// Нулевой Divisor означает значение по умолчанию 5.00.
type DivisibleByConfig struct {
	Divisor decimal.Decimal
}

// DivisibleByRule — сумма заказа делится на делитель без остатка.
// Остаток считается в десятичной арифметике, без двоичной плавающей точки.
type DivisibleByRule struct {
	divisor decimal.Decimal
}

// NewDivisibleByRule — конструктор с проверкой конфигурации.
func NewDivisibleByRule(cfg DivisibleByConfig) (*DivisibleByRule, error) {
	divisor := cfg.Divisor
	if divisor.IsZero() {
		divisor = defaultDivisor
	}
	if !divisor.IsPositive() {
		return nil, fmt.Errorf("%w: %s divisor must be positive, got %s", ErrInvalidRule, DivisibleByRuleName, divisor)
	}
	return &DivisibleByRule{divisor: divisor}, nil
}

func (r *DivisibleByRule) Name() string { return DivisibleByRuleName }

func (r *DivisibleByRule) Description() string {
	return "Validates that order total is divisible by " + r.divisor.String()
}

func (r *DivisibleByRule) Evaluate(order *domain.Order) (bool, error) {
	return order.Total.Mod(r.divisor).IsZero(), nil
}
