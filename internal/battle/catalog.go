package battle

import "arcana-server/internal/domain"

// Имена боевых действий героя.
const (
	SpellMagicBolt     = "Magic Bolt"
	SpellFireBolt      = "Fire Bolt"
	SpellArcaneBurst   = "Arcane Burst"
	SpellPoisonCloud   = "Poison Cloud"
	SpellWard          = "Ward"
	SpellHealingPotion = "Healing Potion"
)

// PlayerActions - каталог действий героя, доступных в бою.
// Величины выводятся из текущих характеристик: каталог пересобирается
// на каждый ход и отдается клиенту вместе с состоянием боя.
func PlayerActions(s *domain.CombatStats) []domain.BattleAction {
	return []domain.BattleAction{
		{Name: SpellMagicBolt, Kind: domain.KindHit, Magnitude: s.AttackDamage},
		{Name: SpellFireBolt, Kind: domain.KindHit, Magnitude: s.AttackDamage + 25},
		{Name: SpellArcaneBurst, Kind: domain.KindHit, Magnitude: s.AttackDamage + 50},
		{
			Name:      SpellPoisonCloud,
			Kind:      domain.KindPoison,
			Magnitude: int(float64(s.AttackDamage) * domain.PoisonDamageMultiplier),
			Duration:  s.PoisonTurns,
		},
		{Name: SpellWard, Kind: domain.KindProtection, Duration: domain.ProtectionDuration},
		{Name: SpellHealingPotion, Kind: domain.KindHealing, Magnitude: s.HealingPotionHealth},
	}
}

// FindPlayerAction ищет действие в каталоге по имени.
func FindPlayerAction(s *domain.CombatStats, name string) (domain.BattleAction, bool) {
	for _, a := range PlayerActions(s) {
		if a.Name == name {
			return a, true
		}
	}
	return domain.BattleAction{}, false
}
