package domain

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
)

// Optional различает три состояния поля в JSON: отсутствует, null, значение.
// Нужен для частичного обновления, где null и "не передано" значат разное.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some создает заданное значение. Удобно в тестах и коде, собирающем патчи.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null создает явно обнуленное значение.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// IsNull — поле передано и равно null.
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Null
}

// HasValue — поле передано с не-null значением.
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

// IsEmpty — поле передано со значением по умолчанию для типа ("" или 0).
// Теги omitempty такое значение пропускают, поэтому обязательные колонки
// проверяются отдельно в Check.
func (o Optional[T]) IsEmpty() bool {
	return o.HasValue() && reflect.ValueOf(&o.Value).Elem().IsZero()
}

// ValidationValue отдает валидатору значение поля или nil, если значения нет.
func (o Optional[T]) ValidationValue() any {
	if o.HasValue() {
		return o.Value
	}
	return nil
}

// apply записывает поле в набор изменений, если оно было передано.
func (o Optional[T]) apply(changes Changes, column string) {
	if !o.Set {
		return
	}
	if o.Null {
		changes[column] = nil
		return
	}
	changes[column] = o.Value
}

// Changes — набор колонок для частичного обновления. Реализует Patch.
type Changes map[string]any

func (c Changes) Changes() map[string]any {
	return c
}

// Patch — частичное обновление сущности: только переданные колонки.
type Patch interface {
	Changes() map[string]any
}

// Entity — сущность с числовым первичным ключом.
type Entity interface {
	PrimaryKey() uint
}

// requireValue отклоняет null и пустое значение для NOT NULL колонки.
func requireValue[T any](o Optional[T], field string) error {
	switch {
	case o.IsNull():
		return Invalid(fmt.Sprintf("%s cannot be null", field))
	case o.IsEmpty():
		return Invalid(fmt.Sprintf("%s cannot be empty", field))
	}
	return nil
}

// firstError возвращает первую ненулевую ошибку.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
