package rules

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRuleNotFound — правило с таким именем не зарегистрировано.
	ErrRuleNotFound = errors.New("rule not found")
	// ErrEvaluation — правило не смогло вычислить результат (ошибка или паника внутри Evaluate).
	ErrEvaluation = errors.New("rule evaluation failed")
	// ErrInvalidRule — некорректная регистрация или конфигурация правила.
	ErrInvalidRule = errors.New("invalid rule")
)

// NotFoundError — запрошенное имя и список доступных правил на момент запроса.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rule %q not found, available rules: [%s]", e.Name, strings.Join(e.Available, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrRuleNotFound }

// EvaluationError — внутренняя ошибка при вычислении правила.
// Это не «правило не выполнено», а «правило не удалось вычислить».
type EvaluationError struct {
	Rule    string
	OrderID int64
	Cause   error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate rule %q for order %d: %v", e.Rule, e.OrderID, e.Cause)
}

// Unwrap — позволяет проверять и ErrEvaluation, и исходную причину.
func (e *EvaluationError) Unwrap() []error { return []error{ErrEvaluation, e.Cause} }
