package actor

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/d20"
)

const (
	PresentationMale   = "male"
	PresentationFemale = "female"

	defaultMaxHP = 10
	defaultAC    = 10
)

// Stats5e represents the six core D&D 5e ability scores
type Stats5e struct {
	Strength     int `json:"strength" yaml:"strength"`
	Dexterity    int `json:"dexterity" yaml:"dexterity"`
	Constitution int `json:"constitution" yaml:"constitution"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Wisdom       int `json:"wisdom" yaml:"wisdom"`
	Charisma     int `json:"charisma" yaml:"charisma"`
}

// ToAttributes converts Stats5e to a map for d20.Actor compatibility
func (s *Stats5e) ToAttributes() map[string]int {
	return map[string]int{
		"strength":     s.Strength,
		"dexterity":    s.Dexterity,
		"constitution": s.Constitution,
		"intelligence": s.Intelligence,
		"wisdom":       s.Wisdom,
		"charisma":     s.Charisma,
	}
}

// PCSpec is the serializable profile of the player character.
type PCSpec struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Presentation string  `json:"presentation,omitempty" yaml:"presentation,omitempty"` // "male" or "female"
	Description  string  `json:"description,omitempty" yaml:"description,omitempty"`
	Stats        Stats5e `json:"stats" yaml:"stats"`
	MaxHP        int     `json:"max_hp,omitempty" yaml:"max_hp,omitempty"`
	AC           int     `json:"ac,omitempty" yaml:"ac,omitempty"`
}

// PC is the runtime representation of a Player Character
type PC struct {
	Spec  *PCSpec
	Actor *d20.Actor // Built at runtime from PCSpec
}

// NewPCFromSpec creates a PC from a PCSpec
func NewPCFromSpec(spec *PCSpec) (*PC, error) {
	if spec == nil {
		return nil, fmt.Errorf("spec cannot be nil")
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("pc %q has no name", spec.ID)
	}
	switch strings.ToLower(spec.Presentation) {
	case "", PresentationMale, PresentationFemale:
	default:
		return nil, fmt.Errorf("pc %q has unknown presentation %q", spec.ID, spec.Presentation)
	}

	id := spec.ID
	if id == "" {
		id = "player"
	}
	maxHP := spec.MaxHP
	if maxHP <= 0 {
		maxHP = defaultMaxHP
	}
	ac := spec.AC
	if ac <= 0 {
		ac = defaultAC
	}

	actor, err := d20.NewActor(id).
		WithHP(maxHP).
		WithAC(ac).
		WithAttributes(spec.Stats.ToAttributes()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}

	return &PC{Spec: spec, Actor: actor}, nil
}

// Intelligence returns the intelligence score used by dialog gates.
func (pc *PC) Intelligence() int {
	if v, ok := pc.Actor.Attribute("intelligence"); ok {
		return v
	}
	return 0
}

// IsFemale reports whether dialog should use female-directed text.
func (pc *PC) IsFemale() bool {
	return strings.EqualFold(pc.Spec.Presentation, PresentationFemale)
}
