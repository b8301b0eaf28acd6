package core

import (
	"context"
	"slices"
	"sync"

	"overlayns/internal/ports"
)

// Object is a plain attribute namespace. It backs both materialized
// units and the result placeholder the host finally exposes. Names keep
// their first assignment order.
type Object struct {
	name  string
	mu    sync.RWMutex
	attrs map[string]any
	order []string
}

func NewObject(name string) *Object {
	return &Object{name: name, attrs: map[string]any{}}
}

func (o *Object) Name() string {
	return o.name
}

func (o *Object) String() string {
	return o.name
}

func (o *Object) Lookup(_ context.Context, name string) (any, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	value, ok := o.attrs[name]
	if !ok {
		return nil, &NotFoundError{Name: name, Consulted: []string{o.name}}
	}
	return value, nil
}

func (o *Object) Names(_ context.Context) ([]string, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return slices.Clone(o.order), nil
}

func (o *Object) Assign(_ context.Context, name string, value any) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.attrs[name]; !ok {
		o.order = append(o.order, name)
	}
	o.attrs[name] = value
	return nil
}

func (o *Object) Remove(_ context.Context, name string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.attrs[name]; !ok {
		return &NotFoundError{Name: name, Consulted: []string{o.name}}
	}
	delete(o.attrs, name)
	o.order = slices.DeleteFunc(o.order, func(existing string) bool {
		return existing == name
	})
	return nil
}

// Len returns the number of attributes currently defined.
func (o *Object) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.order)
}

var _ ports.Mutable = (*Object)(nil)
