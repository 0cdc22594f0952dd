package feedback

import (
	"fmt"
	"sort"
)

// Factory builds a Feedback from named parameters. Missing parameters take
// their defaults.
type Factory func(params map[string]float64) (Feedback, error)

type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	r.factories["gain"] = func(params map[string]float64) (Feedback, error) {
		return NewGain(param(params, "k", 1)), nil
	}
	r.factories["neglog"] = func(params map[string]float64) (Feedback, error) {
		return NewNegLog(int(param(params, "dim", 1))), nil
	}
	r.factories["saturation"] = func(params map[string]float64) (Feedback, error) {
		return NewSaturation(param(params, "k", 1), param(params, "limit", 1))
	}
	r.factories["deadzone"] = func(params map[string]float64) (Feedback, error) {
		return NewDeadZone(param(params, "k", 1), param(params, "width", 1))
	}
	r.factories["tanh"] = func(params map[string]float64) (Feedback, error) {
		return NewTanh(param(params, "k", 1)), nil
	}

	return r
}

// Register adds or replaces a named factory.
func (r *Registry) Register(name string, fn Factory) {
	r.factories[name] = fn
}

func (r *Registry) Get(name string, params map[string]float64) (Feedback, error) {
	fn, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown nonlinearity: %s", name)
	}
	f, err := fn(params)
	if err != nil {
		return nil, fmt.Errorf("nonlinearity %s: %w", name, err)
	}
	return f, nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func param(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return def
}
