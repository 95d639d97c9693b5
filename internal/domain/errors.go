package domain

import (
	"errors"
	"fmt"
	"sort"
)

const (
	EntityCategory = "Product category"
	EntityProduct  = "Product"
)

// ErrCategoryInUse is returned when deleting a category that products still reference.
var ErrCategoryInUse = errors.New("product category has associated products")

// ErrPriceOutOfRange is returned when the store rejects a price that does not fit its column.
var ErrPriceOutOfRange = errors.New("price does not fit the stored precision")

// ErrUnknownCategory is returned when a product write names a category id the store does not have.
var ErrUnknownCategory = errors.New("referenced product category does not exist")

type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// ValidationError holds field-keyed messages, in the order they were added.
type ValidationError struct {
	Fields map[string][]string
	order  []string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Messages flattens every message, first-added field first.
func (e *ValidationError) Messages() []string {
	keys := e.order
	if len(keys) != len(e.Fields) {
		keys = make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	var out []string
	for _, k := range keys {
		out = append(out, e.Fields[k]...)
	}
	return out
}

// Summary is the first message followed by a count of the rest.
func (e *ValidationError) Summary() string {
	msgs := e.Messages()
	switch len(msgs) {
	case 0:
		return "The given data was invalid."
	case 1:
		return msgs[0]
	case 2:
		return msgs[0] + " (and 1 more error)"
	default:
		return fmt.Sprintf("%s (and %d more errors)", msgs[0], len(msgs)-1)
	}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Summary()
}
