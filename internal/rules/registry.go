package rules

import (
	"context"
	"fmt"
	"sync"
)

// Registry — таблица «имя правила → фабрика».
// Заполняется при старте процесса, дальше в основном читается; доступ защищён RWMutex,
// поэтому перерегистрация во время работы (например, в тестах) безопасна.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string // порядок регистрации, для стабильного листинга
	log       Logger
}

// NewRegistry — пустой реестр. log может быть nil.
func NewRegistry(log Logger) *Registry {
	if log == nil {
		log = nopLogger{}
	}
	return &Registry{
		factories: make(map[string]Factory),
		log:       log,
	}
}

// Register — записывает фабрику под именем name.
// Повторная регистрация заменяет прежнюю запись (с предупреждением в лог), позиция в листинге сохраняется.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRule)
	}
	if factory == nil {
		return fmt.Errorf("%w: factory for %q is nil", ErrInvalidRule, name)
	}

	// Фабрика должна создавать правило без аргументов, и имя правила должно совпадать с ключом.
	probe, err := factory()
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRule, name, err)
	}
	if probe == nil || probe.Name() != name {
		return fmt.Errorf("%w: factory registered as %q produces a rule with a different name", ErrInvalidRule, name)
	}

	r.mu.Lock()
	_, exists := r.factories[name]
	r.factories[name] = factory
	if !exists {
		r.order = append(r.order, name)
	}
	r.mu.Unlock()

	ctx := context.Background()
	if exists {
		r.log.Warnf(ctx, "rule %q is being overridden", name)
	}
	r.log.Infof(ctx, "registered rule: %s", name)
	return nil
}

// Get — фабрика правила по имени; *NotFoundError со списком доступных имён, если её нет.
func (r *Registry) Get(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, &NotFoundError{Name: name, Available: r.namesLocked()}
	}
	return factory, nil
}

// Exists — проверка без ошибки, для валидации входа до вызова движка.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	_, ok := r.factories[name]
	r.mu.RUnlock()
	return ok
}

// Names — имена зарегистрированных правил в порядке регистрации.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// All — копия таблицы; изменения копии не влияют на реестр.
func (r *Registry) All() map[string]Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]Factory, len(r.factories))
	for name, factory := range r.factories {
		snapshot[name] = factory
	}
	return snapshot
}

// List — имя и описание каждого правила в порядке регистрации.
// Описание берётся у экземпляра с конфигурацией по умолчанию;
// фабрику, вернувшую ошибку, листинг пропускает с предупреждением.
func (r *Registry) List() []Info {
	r.mu.RLock()
	names := r.namesLocked()
	factories := make([]Factory, len(names))
	for i, name := range names {
		factories[i] = r.factories[name]
	}
	r.mu.RUnlock()

	infos := make([]Info, 0, len(names))
	for i, factory := range factories {
		rule, err := factory()
		if err != nil {
			r.log.Warnf(context.Background(), "rule %q cannot be instantiated: %v", names[i], err)
			continue
		}
		infos = append(infos, Info{Name: names[i], Description: rule.Description()})
	}
	return infos
}

// Len — количество зарегистрированных правил.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

func (r *Registry) namesLocked() []string {
	return append(make([]string, 0, len(r.order)), r.order...)
}
