package config

import "sort"

var steps = [][]float64{{1}, {-4}, {1}, {-1}, {1}, {-1}}

var Presets = map[string]*Config{
	"dsa": {
		Name: "dsa", Kind: KindLinear,
		A:     [][]float64{{0.5, 0}, {0, 0.5}},
		B:     [][]float64{{2, 1}, {1, 2}},
		C:     [][]float64{{1, 0}, {0, 1}},
		D:     [][]float64{{4, 4}, {4, 4}},
		X0:    []float64{0, 0},
		Input: [][]float64{{1, -1}, {0, 1}, {1, 0}, {-1, 1}, {0, 0}, {1, 1}},
	},
	"asd": {
		Name: "asd", Kind: KindLinear,
		A: [][]float64{{0.5}}, B: [][]float64{{3}}, C: [][]float64{{2}}, D: [][]float64{{1}},
		X0: []float64{1}, Input: steps,
	},
	"asd2": {
		Name: "asd2", Kind: KindLinear,
		A: [][]float64{{4}}, B: [][]float64{{3}}, C: [][]float64{{1}}, D: [][]float64{{1}},
		X0: []float64{1}, Input: steps,
	},
	"asd3": {
		Name: "asd3", Kind: KindLinear,
		A: [][]float64{{2}}, B: [][]float64{{0}}, C: [][]float64{{0}}, D: [][]float64{{1}},
		X0: []float64{1}, Input: steps,
	},
	"nonsquare": {
		Name: "nonsquare", Kind: KindLinear,
		A:     [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		B:     [][]float64{{1, 2}, {3, 4}, {5, 6}},
		C:     [][]float64{{1, 2, 3}},
		D:     [][]float64{{100, 1000}},
		X0:    []float64{0, 0, 0},
		Input: [][]float64{{-1, 1}, {-3, 2}, {3, -1}, {0, 0}, {-5, -5}},
	},
	"test_plotSG": {
		Name: "test_plotSG", Kind: KindLinear,
		A:     [][]float64{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}},
		B:     [][]float64{{1}, {1}, {1}},
		C:     [][]float64{{1, 2, 3}},
		D:     [][]float64{{10}},
		X0:    []float64{0, 0, 0},
		Input: [][]float64{{1}, {0}, {0}, {0}},
	},
	"lure_test": {
		Name: "lure_test", Kind: KindLure,
		A: [][]float64{{2}}, B: [][]float64{{1}}, C: [][]float64{{1}}, D: [][]float64{{0}},
		Nonlinearity: &NonlinearityConfig{Name: "neglog"},
		X0:           []float64{1},
		Input:        [][]float64{{0}, {0}, {0}, {0}, {0}, {0}},
	},
	"lure_test2": {
		Name: "lure_test2", Kind: KindLure,
		A: [][]float64{{2}}, B: [][]float64{{1}}, C: [][]float64{{1}}, D: [][]float64{{0}},
		Nonlinearity: &NonlinearityConfig{Name: "gain", Params: map[string]float64{"k": -0.5}},
		X0:           []float64{1},
		Input:        [][]float64{{0}, {0}, {0}, {0}, {0}, {0}},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := cfg.Clone()
	if out.BoundThreshold == 0 {
		out.BoundThreshold = DefaultBoundThreshold
	}
	return out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
