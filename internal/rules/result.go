package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Result — итог проверки заказа набором правил.
// Passed всегда равен логическому И по всем значениям Details.
type Result struct {
	Passed  bool    `json:"passed"`
	Details Details `json:"details"`
}

// Details — упорядоченное отображение «имя правила → результат».
// Порядок совпадает с порядком первого упоминания имени в запросе;
// повторное имя перезаписывает значение, но не меняет позицию.
type Details struct {
	names  []string
	values map[string]bool
}

// Set — записать результат правила.
func (d *Details) Set(name string, passed bool) {
	if d.values == nil {
		d.values = make(map[string]bool)
	}
	if _, ok := d.values[name]; !ok {
		d.names = append(d.names, name)
	}
	d.values[name] = passed
}

// Get — результат правила и признак его наличия.
func (d Details) Get(name string) (passed, ok bool) {
	passed, ok = d.values[name]
	return passed, ok
}

// Names — имена правил в порядке записи.
func (d Details) Names() []string {
	return append([]string(nil), d.names...)
}

// Len — число записей.
func (d Details) Len() int { return len(d.names) }

// All — логическое И по всем значениям (true для пустого набора).
func (d Details) All() bool {
	for _, name := range d.names {
		if !d.values[name] {
			return false
		}
	}
	return true
}

// Map — копия в виде обычной map.
func (d Details) Map() map[string]bool {
	m := make(map[string]bool, len(d.values))
	for k, v := range d.values {
		m[k] = v
	}
	return m
}

// MarshalJSON — JSON-объект с ключами в порядке записи.
func (d Details) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range d.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if d.values[name] {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON — читает объект, сохраняя порядок ключей.
func (d *Details) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("details: expected object, got %v", tok)
	}

	*d = Details{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("details: expected string key, got %v", tok)
		}
		var passed bool
		if err := dec.Decode(&passed); err != nil {
			return fmt.Errorf("details[%s]: %w", name, err)
		}
		d.Set(name, passed)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
