package rules

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/order_rules/internal/domain"
)

// Engine — применяет набор правил к заказу и агрегирует результат.
// Состояния между вызовами не хранит: на каждый вызов правила заново ищутся в реестре
// и создаются заново, поэтому изменения реестра видны сразу.
type Engine struct {
	registry *Registry
	log      Logger
}

// NewEngine — конструктор движка. log может быть nil.
func NewEngine(registry *Registry, log Logger) *Engine {
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{registry: registry, log: log}
}

// EvaluateRules — проверяет заказ правилами names в заданном порядке.
//
// Неизвестное имя прерывает весь вызов (*NotFoundError, частичного результата нет).
// Ошибка или паника внутри правила возвращается как *EvaluationError.
// «Правило не выполнено» — это обычное false в Details, не ошибка.
func (e *Engine) EvaluateRules(ctx context.Context, order *domain.Order, names []string) (*Result, error) {
	if order == nil {
		return nil, fmt.Errorf("%w: order is nil", ErrEvaluation)
	}

	var details Details
	for _, name := range names {
		factory, err := e.registry.Get(name)
		if err != nil {
			e.log.Errorf(ctx, "rule not found: %s", name)
			return nil, err
		}

		passed, err := e.evaluateOne(factory, name, order)
		if err != nil {
			e.log.Errorf(ctx, "error evaluating rule %q for order %d: %v", name, order.ID, err)
			return nil, err
		}

		e.log.Debugf(ctx, "rule %q evaluated for order %d: %t", name, order.ID, passed)
		details.Set(name, passed)
	}

	return &Result{Passed: details.All(), Details: details}, nil
}

// ListRules — имя и описание всех зарегистрированных правил.
func (e *Engine) ListRules() []Info {
	return e.registry.List()
}

// evaluateOne — создаёт свежий экземпляр правила и вычисляет его; паника превращается в ошибку.
func (e *Engine) evaluateOne(factory Factory, name string, order *domain.Order) (passed bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			passed = false
			err = &EvaluationError{Rule: name, OrderID: order.ID, Cause: fmt.Errorf("panic: %v", rec)}
		}
	}()

	rule, err := factory()
	if err != nil {
		return false, &EvaluationError{Rule: name, OrderID: order.ID, Cause: err}
	}

	passed, err = rule.Evaluate(order)
	if err != nil {
		return false, &EvaluationError{Rule: name, OrderID: order.ID, Cause: err}
	}
	return passed, nil
}
