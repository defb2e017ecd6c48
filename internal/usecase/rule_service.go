package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Gunvolt24/order_rules/internal/domain"
	"github.com/Gunvolt24/order_rules/internal/ports"
	"github.com/Gunvolt24/order_rules/internal/rules"
	"github.com/Gunvolt24/order_rules/pkg/ctxmeta"
	"github.com/Gunvolt24/order_rules/pkg/metrics"
	"github.com/Gunvolt24/order_rules/pkg/telemetry"
)

// Проверка, что RuleService удовлетворяет порту проверки правил.
var _ ports.RuleCheckService = (*RuleService)(nil)

// ErrInvalidRequest — запрос на проверку не прошёл валидацию.
var ErrInvalidRequest = errors.New("invalid request")

// MaxRuleNameLen — наибольшая длина имени правила в запросе.
const MaxRuleNameLen = 100

// Исходы проверки для метрики rule_checks_total.
const (
	outcomePassed   = "passed"
	outcomeFailed   = "failed"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// UnknownRulesError — в запросе есть незарегистрированные имена правил.
type UnknownRulesError struct {
	Invalid   []string
	Available []string
}

func (e *UnknownRulesError) Error() string {
	return fmt.Sprintf("invalid rule(s): %s. available rules: %s",
		strings.Join(e.Invalid, ", "), strings.Join(e.Available, ", "))
}

func (e *UnknownRulesError) Unwrap() error { return ErrInvalidRequest }

// ruleEvaluator — движок правил.
type ruleEvaluator interface {
	EvaluateRules(ctx context.Context, order *domain.Order, names []string) (*rules.Result, error)
	ListRules() []rules.Info
}

// ruleCatalog — то, что нужно от реестра для проверки входа.
type ruleCatalog interface {
	Exists(name string) bool
	Names() []string
}

// RuleService — проверка заказа набором правил: валидация запроса, загрузка заказа, вызов движка.
type RuleService struct {
	engine  ruleEvaluator
	catalog ruleCatalog
	orders  ports.OrderReadService
	log     ports.Logger
}

// NewRuleService — DI-конструктор.
func NewRuleService(engine ruleEvaluator, catalog ruleCatalog, orders ports.OrderReadService, log ports.Logger) *RuleService {
	return &RuleService{engine: engine, catalog: catalog, orders: orders, log: log}
}

// CheckRules — применяет правила ruleNames к заказу orderID.
//
// Ошибки:
//   - ErrInvalidRequest (или *UnknownRulesError) — некорректный запрос, движок не вызывается;
//   - domain.ErrOrderNotFound — заказа нет;
//   - *rules.EvaluationError и прочие — внутренняя ошибка.
func (s *RuleService) CheckRules(ctx context.Context, orderID int64, ruleNames []string) (res *rules.Result, err error) {
	started := time.Now()
	ctx = ctxmeta.WithOrderID(ctx, orderID)

	ctx, span := telemetry.Tracer().Start(ctx, "RuleService.CheckRules")
	span.SetAttributes(
		attribute.Int64("order.id", orderID),
		attribute.StringSlice("rules.requested", ruleNames),
	)
	defer func() {
		outcome := checkOutcome(res, err)
		metrics.ObserveCheck(outcome, started)
		span.SetAttributes(attribute.String("rules.outcome", outcome))
		if err != nil && outcome == outcomeError {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	names, err := s.validateRequest(orderID, ruleNames)
	if err != nil {
		s.log.Warnf(ctx, "invalid rule check request: %v", err)
		return nil, err
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			s.log.Warnf(ctx, "order %d not found", orderID)
		}
		return nil, err
	}

	res, err = s.engine.EvaluateRules(ctx, order, names)
	if err != nil {
		var evalErr *rules.EvaluationError
		if errors.As(err, &evalErr) {
			metrics.ObserveRule(evalErr.Rule, false, err)
		}
		s.log.Errorf(ctx, "rules evaluation failed for order %d: %v", orderID, err)
		return nil, err
	}

	for _, name := range res.Details.Names() {
		passed, _ := res.Details.Get(name)
		metrics.ObserveRule(name, passed, nil)
	}

	s.log.Infof(ctx, "rules evaluated for order %d: passed=%t details=%v", orderID, res.Passed, res.Details.Map())
	return res, nil
}

// ListRules — имя и описание всех зарегистрированных правил в порядке регистрации.
func (s *RuleService) ListRules(ctx context.Context) []rules.Info {
	infos := s.engine.ListRules()
	s.log.Debugf(ctx, "retrieved %d available rules", len(infos))
	return infos
}

// validateRequest — проверка входа до обращения к хранилищу и движку.
// Имена очищаются от пробелов по краям; порядок и повторы сохраняются.
func (s *RuleService) validateRequest(orderID int64, ruleNames []string) ([]string, error) {
	if orderID < 1 {
		return nil, fmt.Errorf("%w: order_id must be >= 1", ErrInvalidRequest)
	}
	if len(ruleNames) == 0 {
		return nil, fmt.Errorf("%w: rules must contain at least one rule name", ErrInvalidRequest)
	}

	names := make([]string, len(ruleNames))
	for i, raw := range ruleNames {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("%w: rules[%d] must not be empty", ErrInvalidRequest, i)
		}
		if len(name) > MaxRuleNameLen {
			return nil, fmt.Errorf("%w: rules[%d] must be at most %d characters", ErrInvalidRequest, i, MaxRuleNameLen)
		}
		names[i] = name
	}

	var invalid []string
	seen := make(map[string]struct{})
	for _, name := range names {
		if s.catalog.Exists(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		invalid = append(invalid, name)
	}
	if len(invalid) > 0 {
		return nil, &UnknownRulesError{Invalid: invalid, Available: s.catalog.Names()}
	}
	return names, nil
}

func checkOutcome(res *rules.Result, err error) string {
	switch {
	case err == nil && res != nil && res.Passed:
		return outcomePassed
	case err == nil:
		return outcomeFailed
	case errors.Is(err, ErrInvalidRequest):
		return outcomeInvalid
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, rules.ErrRuleNotFound):
		return outcomeNotFound
	default:
		return outcomeError
	}
}
