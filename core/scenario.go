// Package: moriarty/core
//
// scenario.go — the Scenario overlay: properties applied globally or per
// type-name, in the order they were added.
package core

// Scenario is a set of cross-cutting Properties partitioned into "general"
// (every variable) and "per type-name" (variables whose Typename matches).
type Scenario struct {
	general []Property
	typed   map[string][]Property
}

// NewScenario returns an empty Scenario.
func NewScenario() *Scenario {
	return &Scenario{typed: make(map[string][]Property)}
}

// WithGeneralProperty appends a property applied to every variable.
// Returns the receiver for chaining.
func (s *Scenario) WithGeneralProperty(p Property) *Scenario {
	s.general = append(s.general, p)
	return s
}

// WithTypeSpecificProperty appends a property applied only to variables of
// the given type-name. Returns the receiver for chaining.
func (s *Scenario) WithTypeSpecificProperty(typename string, p Property) *Scenario {
	s.typed[typename] = append(s.typed[typename], p)
	return s
}

// GetGeneralProperties returns the general properties in insertion order.
func (s *Scenario) GetGeneralProperties() []Property {
	return append([]Property(nil), s.general...)
}

// GetTypeSpecificProperties returns the properties registered for the given
// type-name, in insertion order.
func (s *Scenario) GetTypeSpecificProperties(typename string) []Property {
	return append([]Property(nil), s.typed[typename]...)
}

// Clone returns a deep copy of the scenario.
func (s *Scenario) Clone() *Scenario {
	c := NewScenario()
	c.general = append(c.general, s.general...)
	for tn, ps := range s.typed {
		c.typed[tn] = append([]Property(nil), ps...)
	}
	return c
}
