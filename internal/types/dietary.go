package types

import "fmt"

// DietaryRestriction is one of the closed set of dietary filters a user can
// select for a generation request. All generated recipes must comply with
// every selected restriction.
type DietaryRestriction string

const (
	Vegetarian       DietaryRestriction = "Vegetarian"
	Vegan            DietaryRestriction = "Vegan"
	GlutenFree       DietaryRestriction = "Gluten-Free"
	DairyFree        DietaryRestriction = "Dairy-Free"
	LowCarb          DietaryRestriction = "Low-Carb"
	Keto             DietaryRestriction = "Keto"
	Paleo            DietaryRestriction = "Paleo"
	NutFree          DietaryRestriction = "Nut-Free"
	DiabeticFriendly DietaryRestriction = "Diabetic-Friendly"
	HeartHealthy     DietaryRestriction = "Heart-Healthy"
)

// AllDietaryRestrictions returns every supported restriction in display order.
func AllDietaryRestrictions() []DietaryRestriction {
	return []DietaryRestriction{
		Vegetarian,
		Vegan,
		GlutenFree,
		DairyFree,
		LowCarb,
		Keto,
		Paleo,
		NutFree,
		DiabeticFriendly,
		HeartHealthy,
	}
}

func (d DietaryRestriction) String() string {
	return string(d)
}

// Valid reports whether d is one of the supported restrictions.
func (d DietaryRestriction) Valid() bool {
	switch d {
	case Vegetarian, Vegan, GlutenFree, DairyFree, LowCarb,
		Keto, Paleo, NutFree, DiabeticFriendly, HeartHealthy:
		return true
	}
	return false
}

// ParseDietaryRestriction converts a raw string into a DietaryRestriction.
func ParseDietaryRestriction(s string) (DietaryRestriction, error) {
	d := DietaryRestriction(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown dietary restriction: %q", s)
	}
	return d, nil
}

// ParseDietaryRestrictions converts a list of raw strings, rejecting unknown
// values and duplicates. Order is preserved.
func ParseDietaryRestrictions(raw []string) ([]DietaryRestriction, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	seen := make(map[DietaryRestriction]bool, len(raw))
	out := make([]DietaryRestriction, 0, len(raw))
	for _, s := range raw {
		d, err := ParseDietaryRestriction(s)
		if err != nil {
			return nil, err
		}
		if seen[d] {
			return nil, fmt.Errorf("duplicate dietary restriction: %q", s)
		}
		seen[d] = true
		out = append(out, d)
	}
	return out, nil
}
