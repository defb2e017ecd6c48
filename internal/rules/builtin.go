package rules

import "fmt"

// Registration — имя правила и его фабрика.
type Registration struct {
	Name    string
	Factory Factory
}

// Builtin — встроенные правила в порядке регистрации.
// Новое правило добавляется в этот список.
func Builtin() []Registration {
	return []Registration{
		{Name: MinTotalRuleName, Factory: func() (Rule, error) { return NewMinTotalRule(MinTotalConfig{}) }},
		{Name: MinItemsRuleName, Factory: func() (Rule, error) { return NewMinItemsRule(MinItemsConfig{}) }},
		{Name: DivisibleByRuleName, Factory: func() (Rule, error) { return NewDivisibleByRule(DivisibleByConfig{}) }},
	}
}

// RegisterAll — регистрирует правила из списка по порядку.
func RegisterAll(r *Registry, regs []Registration) error {
	for _, reg := range regs {
		if err := r.Register(reg.Name, reg.Factory); err != nil {
			return fmt.Errorf("register rule %q: %w", reg.Name, err)
		}
	}
	return nil
}

// RegisterBuiltin — регистрирует встроенные правила в r.
func RegisterBuiltin(r *Registry) error {
	return RegisterAll(r, Builtin())
}

// NewDefaultRegistry — реестр со всеми встроенными правилами.
// Вызывается один раз при старте, до приёма запросов.
func NewDefaultRegistry(log Logger) (*Registry, error) {
	r := NewRegistry(log)
	if err := RegisterBuiltin(r); err != nil {
		return nil, err
	}
	return r, nil
}
