package services

import "fmt"

// Weights defines the advantage points awarded per matching type occurrence.
type Weights struct {
	DoubleDamageTo int
	HalfDamageFrom int
	NoDamageFrom   int
}

// DefaultWeights returns the standard point distribution: dealing double
// damage and being immune are worth twice a resistance.
func DefaultWeights() Weights {
	return Weights{
		DoubleDamageTo: 2,
		HalfDamageFrom: 1,
		NoDamageFrom:   2,
	}
}

// Validate checks that no weight is negative. The first negative weight in
// declaration order is reported.
func (w Weights) Validate() error {
	switch {
	case w.DoubleDamageTo < 0:
		return fmt.Errorf("negative weight for double_damage_to: %d", w.DoubleDamageTo)
	case w.HalfDamageFrom < 0:
		return fmt.Errorf("negative weight for half_damage_from: %d", w.HalfDamageFrom)
	case w.NoDamageFrom < 0:
		return fmt.Errorf("negative weight for no_damage_from: %d", w.NoDamageFrom)
	}
	return nil
}
