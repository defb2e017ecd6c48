package validate

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/order_rules/internal/domain"
	"github.com/Gunvolt24/order_rules/internal/ports"
	"github.com/Gunvolt24/order_rules/internal/rules"
)

// RuleEvaluator — то, чем проверяются заказы (rules.Engine).
type RuleEvaluator interface {
	EvaluateRules(ctx context.Context, order *domain.Order, names []string) (*rules.Result, error)
}

// Checker — офлайн-проверка заказов из файла: валидация и, если задан движок, правила.
type Checker struct {
	validator ports.OrderValidator
	engine    RuleEvaluator
	rules     []string
}

// NewChecker — engine может быть nil: тогда выполняется только валидация.
func NewChecker(validator ports.OrderValidator, engine RuleEvaluator, ruleNames []string) *Checker {
	return &Checker{
		validator: validator,
		engine:    engine,
		rules:     append([]string(nil), ruleNames...),
	}
}

// Report — одна строка вывода на каждый входной заказ.
type Report struct {
	Line    int            `json:"line"`
	Order   *ReportOrder   `json:"order,omitempty"`
	Passed  *bool          `json:"passed,omitempty"`
	Details *rules.Details `json:"details,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// ReportOrder — заказ в выводе; сумма всегда с двумя знаками.
type ReportOrder struct {
	ID         int64  `json:"id,omitempty"`
	Total      string `json:"total"`
	ItemsCount int    `json:"items_count"`
}

// Summary — итоги проверки.
type Summary struct {
	Valid   int
	Invalid int
	Passed  int
	Failed  int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d valid / %d invalid, %d passed / %d failed", s.Valid, s.Invalid, s.Passed, s.Failed)
}

// check — отчёт по одному сырому заказу.
// Невалидный заказ — это отчёт с Error; ошибка возвращается только если сломались сами правила.
func (c *Checker) check(ctx context.Context, line int, raw []byte, sum *Summary) (Report, error) {
	rep := Report{Line: line}

	order, err := ValidateOrderFromJSON(ctx, c.validator, raw)
	if err != nil {
		sum.Invalid++
		rep.Error = err.Error()
		return rep, nil
	}
	sum.Valid++
	rep.Order = &ReportOrder{ID: order.ID, Total: order.Total.StringFixed(TotalScale), ItemsCount: order.ItemsCount}

	if c.engine == nil {
		return rep, nil
	}
	res, err := c.engine.EvaluateRules(ctx, order, c.rules)
	if err != nil {
		return rep, fmt.Errorf("line %d: %w", line, err)
	}
	if res.Passed {
		sum.Passed++
	} else {
		sum.Failed++
	}
	rep.Passed = &res.Passed
	rep.Details = &res.Details
	return rep, nil
}
