// casefile.go — the YAML case description and its translation into a
// wired driver.
package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/moriarty"
	"github.com/katalvlaran/moriarty/core"
	"github.com/katalvlaran/moriarty/covering"
	"github.com/katalvlaran/moriarty/random"
	"github.com/katalvlaran/moriarty/simpleio"
	"github.com/katalvlaran/moriarty/vartypes"
)

// caseFile is the YAML description root.
type caseFile struct {
	Seed          []int64              `yaml:"seed"`
	SeedVersion   string               `yaml:"seed_version"`
	SoftSizeLimit int64                `yaml:"soft_size_limit"`
	RetryBudget   int                  `yaml:"retry_budget"`
	Variables     []varSpec            `yaml:"variables"`
	Known         map[string]yaml.Node `yaml:"known"`
	Scenario      map[string]string    `yaml:"scenario"`
	Generators    []generatorSpec      `yaml:"generators"`
	IO            *ioSpec              `yaml:"io"`
}

// varSpec describes one variable. Exactly the fields matching its type are
// honored; the rest must be absent.
type varSpec struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"` // int | str | array
	Min      *int64    `yaml:"min"`
	Max      *int64    `yaml:"max"`
	MinExpr  string    `yaml:"min_expr"`
	MaxExpr  string    `yaml:"max_expr"`
	Length   *lenSpec  `yaml:"length"`
	Alphabet string    `yaml:"alphabet"`
	Pattern  string    `yaml:"pattern"`
	Element  *varSpec  `yaml:"element"`
	Distinct bool      `yaml:"distinct"`
}

type lenSpec struct {
	Min     *int64 `yaml:"min"`
	Max     *int64 `yaml:"max"`
	MinExpr string `yaml:"min_expr"`
	MaxExpr string `yaml:"max_expr"`
}

type generatorSpec struct {
	Name     string `yaml:"name"`
	Strength int    `yaml:"strength"`
}

type ioSpec struct {
	CaseCountHeader bool     `yaml:"case_count_header"`
	Whitespace      string   `yaml:"whitespace"` // exact (default) | ignore
	Header          []string `yaml:"header"`
	Case            []string `yaml:"case"`
	Footer          []string `yaml:"footer"`
}

// loadCaseFile parses the YAML description and wires a driver plus the
// optional token-stream format.
func loadCaseFile(path string) (*moriarty.Moriarty, *simpleio.Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cf caseFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	opts := []moriarty.Option{
		moriarty.WithSeed(random.Seed{Ints: cf.Seed, Version: cf.SeedVersion}),
	}
	if cf.SoftSizeLimit > 0 {
		opts = append(opts, moriarty.WithSoftSizeLimit(cf.SoftSizeLimit))
	}
	if cf.RetryBudget > 0 {
		opts = append(opts, moriarty.WithRetryBudget(cf.RetryBudget))
	}
	m := moriarty.New(opts...)

	for _, spec := range cf.Variables {
		v, err := buildVariable(&spec)
		if err != nil {
			return nil, nil, fmt.Errorf("variable %q: %w", spec.Name, err)
		}
		if err := m.AddVariable(spec.Name, v); err != nil {
			return nil, nil, err
		}
	}
	for name, node := range cf.Known {
		val, err := decodeKnown(&node)
		if err != nil {
			return nil, nil, fmt.Errorf("known value %q: %w", name, err)
		}
		if err := m.SetValue(name, val); err != nil {
			return nil, nil, err
		}
	}
	if len(cf.Scenario) > 0 {
		s := core.NewScenario()
		for category, descriptor := range cf.Scenario {
			s.WithGeneralProperty(core.Property{Category: category, Descriptor: descriptor})
		}
		m.WithScenario(s)
	}
	for _, g := range cf.Generators {
		strength := g.Strength
		if strength < 1 {
			strength = 2
		}
		name := g.Name
		if name == "" {
			name = "covering"
		}
		m.AddGenerator(covering.NewCasesGenerator(name, strength))
	}

	var format *simpleio.Format
	if cf.IO != nil {
		format, err = buildFormat(cf.IO)
		if err != nil {
			return nil, nil, err
		}
		m.SetExporter(format).SetImporter(format)
	}

	return m, format, nil
}

func buildVariable(spec *varSpec) (core.Variable, error) {
	switch spec.Type {
	case "int", "":
		v := vartypes.NewInteger()
		if spec.Min != nil {
			v = v.AtLeast(*spec.Min)
		}
		if spec.Max != nil {
			v = v.AtMost(*spec.Max)
		}
		if spec.MinExpr != "" {
			v = v.AtLeastExpr(spec.MinExpr)
		}
		if spec.MaxExpr != "" {
			v = v.AtMostExpr(spec.MaxExpr)
		}
		return v, nil

	case "str":
		v := vartypes.NewString()
		if spec.Length != nil {
			if spec.Length.Min != nil {
				v = v.OfLength(*spec.Length.Min, int64(1)<<40)
			}
			if spec.Length.Max != nil {
				v = v.OfLength(0, *spec.Length.Max)
			}
			if spec.Length.MinExpr != "" {
				v = v.OfLengthAtLeastExpr(spec.Length.MinExpr)
			}
			if spec.Length.MaxExpr != "" {
				v = v.OfLengthAtMostExpr(spec.Length.MaxExpr)
			}
		}
		if spec.Alphabet != "" {
			v = v.WithAlphabet(spec.Alphabet)
		}
		if spec.Pattern != "" {
			v = v.MatchesPattern(spec.Pattern)
		}
		return v, nil

	case "array":
		if spec.Element == nil {
			return nil, fmt.Errorf("array needs an element description")
		}
		elem, err := buildVariable(spec.Element)
		if err != nil {
			return nil, fmt.Errorf("element: %w", err)
		}
		v := vartypes.NewArray(elem)
		if spec.Length != nil {
			if spec.Length.Min != nil && spec.Length.Max != nil {
				v = v.OfLength(*spec.Length.Min, *spec.Length.Max)
			} else if spec.Length.Min != nil {
				v = v.OfLength(*spec.Length.Min, int64(1)<<40)
			} else if spec.Length.Max != nil {
				v = v.OfLength(0, *spec.Length.Max)
			}
			if spec.Length.MinExpr != "" {
				v = v.OfLengthAtLeastExpr(spec.Length.MinExpr)
			}
			if spec.Length.MaxExpr != "" {
				v = v.OfLengthAtMostExpr(spec.Length.MaxExpr)
			}
		}
		if spec.Distinct {
			v = v.Distinct()
		}
		return v, nil

	default:
		return nil, fmt.Errorf("unknown variable type %q", spec.Type)
	}
}

// decodeKnown accepts integer, string and integer-list known values.
func decodeKnown(node *yaml.Node) (any, error) {
	var asInt int64
	if err := node.Decode(&asInt); err == nil {
		return asInt, nil
	}
	var asList []int64
	if err := node.Decode(&asList); err == nil {
		return asList, nil
	}
	var asStr string
	if err := node.Decode(&asStr); err == nil {
		return asStr, nil
	}
	return nil, fmt.Errorf("unsupported value")
}

// buildFormat translates io line strings into a Format. Within a line,
// whitespace-separated fields starting with '$' reference variables; all
// other fields are literals.
func buildFormat(spec *ioSpec) (*simpleio.Format, error) {
	f := simpleio.NewFormat()
	if spec.CaseCountHeader {
		f = f.WithCaseCountHeader()
	}
	switch spec.Whitespace {
	case "", "exact":
		f = f.WithPolicy(simpleio.Exact)
	case "ignore":
		f = f.WithPolicy(simpleio.IgnoreWhitespace)
	default:
		return nil, fmt.Errorf("unknown whitespace policy %q", spec.Whitespace)
	}
	add := func(lines []string, with func(...simpleio.Token) *simpleio.Format) {
		for _, line := range lines {
			var toks []simpleio.Token
			for _, field := range strings.Fields(line) {
				if strings.HasPrefix(field, "$") {
					toks = append(toks, simpleio.Var(strings.TrimPrefix(field, "$")))
				} else {
					toks = append(toks, simpleio.Lit(field))
				}
			}
			with(toks...)
		}
	}
	add(spec.Header, f.WithHeaderLine)
	add(spec.Case, f.WithCaseLine)
	add(spec.Footer, f.WithFooterLine)

	return f, nil
}
