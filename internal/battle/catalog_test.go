package battle

import (
	"testing"

	"arcana-server/internal/domain"
)

func TestPlayerActionsDeriveFromStats(t *testing.T) {
	s := &domain.CombatStats{
		AttackDamage:        300,
		HealingPotionHealth: 1000,
		PoisonTurns:         2,
	}

	byName := map[string]domain.BattleAction{}
	for _, a := range PlayerActions(s) {
		byName[a.Name] = a
	}

	if byName[SpellMagicBolt].Magnitude != 300 {
		t.Errorf("Magic Bolt must deal base attack, got %d", byName[SpellMagicBolt].Magnitude)
	}
	if byName[SpellFireBolt].Magnitude != 325 {
		t.Errorf("Fire Bolt must deal base+25, got %d", byName[SpellFireBolt].Magnitude)
	}
	if byName[SpellArcaneBurst].Magnitude != 350 {
		t.Errorf("Arcane Burst must deal base+50, got %d", byName[SpellArcaneBurst].Magnitude)
	}

	poison := byName[SpellPoisonCloud]
	if poison.Magnitude != 150 || poison.Duration != 2 {
		t.Errorf("Poison Cloud: expected 150 dmg for 2 turns, got %d for %d", poison.Magnitude, poison.Duration)
	}

	if byName[SpellWard].Duration != domain.ProtectionDuration {
		t.Errorf("Ward duration mismatch: %d", byName[SpellWard].Duration)
	}
	if byName[SpellHealingPotion].Magnitude != 1000 {
		t.Errorf("Healing Potion must restore HealingPotionHealth, got %d", byName[SpellHealingPotion].Magnitude)
	}
}

func TestFindPlayerAction(t *testing.T) {
	s := &domain.CombatStats{AttackDamage: 100}

	if _, ok := FindPlayerAction(s, SpellFireBolt); !ok {
		t.Error("Known spell must be found")
	}
	if _, ok := FindPlayerAction(s, "Summon Dragon"); ok {
		t.Error("Unknown spell must not be found")
	}
}
