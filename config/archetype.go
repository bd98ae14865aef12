package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Archetype is the zombie subtype. It determines base stats and which
// behavior override the agent carries.
type Archetype int

const (
	Shambler Archetype = iota
	Bruiser
	Jumper
	Sneaker
	Spitter
)

var archetypeNames = [...]string{"shambler", "bruiser", "jumper", "sneaker", "spitter"}

// AllArchetypes lists every archetype in declaration order.
func AllArchetypes() []Archetype {
	return []Archetype{Shambler, Bruiser, Jumper, Sneaker, Spitter}
}

func (a Archetype) String() string {
	if a < 0 || int(a) >= len(archetypeNames) {
		return fmt.Sprintf("archetype(%d)", int(a))
	}
	return archetypeNames[a]
}

// ParseArchetype accepts archetype names case-insensitively. The behavior
// aliases (charger, leaper) are accepted as well.
func ParseArchetype(s string) (Archetype, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "charger":
		return Bruiser, nil
	case "leaper":
		return Jumper, nil
	}
	for i, n := range archetypeNames {
		if n == name {
			return Archetype(i), nil
		}
	}
	return Shambler, fmt.Errorf("unknown archetype %q", s)
}

func (a *Archetype) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseArchetype(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Archetype) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// BehaviorKind selects the behavior override attached at construction.
type BehaviorKind int

const (
	BehaviorNone BehaviorKind = iota
	BehaviorCharger
	BehaviorLeaper
	BehaviorSneaker
	BehaviorSpitter
)

func (b BehaviorKind) String() string {
	switch b {
	case BehaviorCharger:
		return "charger"
	case BehaviorLeaper:
		return "leaper"
	case BehaviorSneaker:
		return "sneaker"
	case BehaviorSpitter:
		return "spitter"
	default:
		return "none"
	}
}
