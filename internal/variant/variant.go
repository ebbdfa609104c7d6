// Package variant compiles game variant definitions from CUE.
//
// Variants are data, not code: the embedded variants.cue ships the
// standard Twenty-Eight rules plus the legacy Forty-Two rules, and a
// directory of extra .cue files can add house variants without rebuilding.
// The CUE schema carries the structural constraints (ranges, non-empty
// labels); Go validation adds the cross-field rules CUE cannot express
// cleanly.
package variant

import (
	_ "embed"
	"fmt"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/RobOwenKing/twenty-eight/internal/digits"
)

//go:embed variants.cue
var defaultCUE string

// DefaultName is the variant used when nothing else is configured.
const DefaultName = "twenty-eight"

// Band is a score bucket for the all-time stats chart.
type Band struct {
	Label string `json:"label"`
	Low   int    `json:"low"`
	High  int    `json:"high"`
}

// Contains reports whether score falls in the band.
func (b Band) Contains(score int) bool {
	return score >= b.Low && score <= b.High
}

// Variant is one compiled rule set.
type Variant struct {
	Name       string        `json:"name"`
	Title      string        `json:"title"`
	TargetLow  int           `json:"targetLow"`
	TargetHigh int           `json:"targetHigh"`
	Digits     digits.Policy `json:"digits"`
	Bands      []Band        `json:"bands"`
}

// CompileError reports a variant definition that failed validation.
type CompileError struct {
	Variant string
	Field   string
	Message string
}

func (e *CompileError) Error() string {
	if e.Variant == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("variant %q: %s: %s", e.Variant, e.Field, e.Message)
}

// Default returns the embedded variant registry.
//
// Panics if the embedded definitions fail to compile; that is a build
// defect, not a runtime condition.
func Default() map[string]Variant {
	vs, err := compileString(defaultCUE)
	if err != nil {
		panic(fmt.Sprintf("embedded variants.cue is invalid: %v", err))
	}
	return vs
}

// LoadDir compiles variant definitions from a directory of .cue files and
// merges them over the embedded defaults. A file defining a name that
// already exists replaces the default definition.
func LoadDir(dir string) (map[string]Variant, error) {
	insts := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(insts) == 0 {
		return nil, fmt.Errorf("load variants: no CUE instances in %s", dir)
	}
	if insts[0].Err != nil {
		return nil, fmt.Errorf("load variants: %w", insts[0].Err)
	}

	ctx := cuecontext.New()
	v := ctx.BuildInstance(insts[0])
	if v.Err() != nil {
		return nil, fmt.Errorf("build variants: %w", v.Err())
	}

	loaded, err := Compile(v)
	if err != nil {
		return nil, err
	}

	merged := Default()
	for name, variant := range loaded {
		merged[name] = variant
	}
	return merged, nil
}

// Compile extracts every variant under the "variants" field of a CUE
// value, validating each.
func Compile(v cue.Value) (map[string]Variant, error) {
	root := v.LookupPath(cue.ParsePath("variants"))
	if !root.Exists() {
		return nil, &CompileError{Field: "variants", Message: "field is required"}
	}

	iter, err := root.Fields()
	if err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}

	out := map[string]Variant{}
	for iter.Next() {
		name := iter.Selector().Unquoted()

		var variant Variant
		if err := iter.Value().Decode(&variant); err != nil {
			return nil, &CompileError{Variant: name, Field: "(decode)", Message: err.Error()}
		}
		if err := validate(variant); err != nil {
			return nil, err
		}
		out[name] = variant
	}
	return out, nil
}

// Names returns the registry's variant names, sorted.
func Names(vs map[string]Variant) []string {
	names := make([]string, 0, len(vs))
	for name := range vs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validate applies the cross-field rules the CUE schema leaves open.
func validate(v Variant) error {
	fail := func(field, format string, args ...any) error {
		return &CompileError{Variant: v.Name, Field: field, Message: fmt.Sprintf(format, args...)}
	}

	if v.TargetHigh < v.TargetLow {
		return fail("targetHigh", "must be at least targetLow (%d)", v.TargetLow)
	}
	if len(v.Digits.Fixed) > 0 {
		if len(v.Digits.Fixed) != v.Digits.Count {
			return fail("digits.fixed", "has %d digits, policy count is %d", len(v.Digits.Fixed), v.Digits.Count)
		}
	} else if v.Digits.Low > v.Digits.High {
		return fail("digits.low", "exceeds digits.high")
	}
	for i, b := range v.Bands {
		if b.Low < v.TargetLow || b.High > v.TargetHigh {
			return fail(fmt.Sprintf("bands[%d]", i), "band %s falls outside targets %d-%d", b.Label, v.TargetLow, v.TargetHigh)
		}
	}
	return nil
}

// compileString compiles a single CUE source, used for the embedded
// registry and in tests.
func compileString(src string) (map[string]Variant, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	if v.Err() != nil {
		return nil, fmt.Errorf("compile variants: %w", v.Err())
	}
	return Compile(v)
}
