package enemy

import (
	"arcana-server/internal/domain"
	"arcana-server/pkg/dice"
	"arcana-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Имена действий архетипа случайной стычки.
const (
	actionMagicBolt     = "Magic Bolt"
	actionFireBolt      = "Fire Bolt"
	actionArcaneBurst   = "Arcane Burst"
	actionPoisonCloud   = "Poison Cloud"
	actionHealingPotion = "Healing Potion"
)

// RandomEncounter - противник случайной стычки. Его характеристики
// выводятся из текущего опыта героя в момент создания: чем опытнее
// герой, тем жирнее и злее противник.
type RandomEncounter struct {
	name  string
	stats *domain.CombatStats
	dice  dice.Source
}

// NewRandomEncounter создает противника, масштабированного под опыт героя.
// Отрицательный опыт обрезается до нуля (защитная мера, а не ошибка).
func NewRandomEncounter(playerExp int, src dice.Source) *RandomEncounter {
	if playerExp < 0 {
		playerExp = 0
	}

	// Здоровье: случайный множитель от опыта, шаг 2000.
	maxHealth := (src.Intn(playerExp/25+1) + 1) * 2000

	stats := &domain.CombatStats{
		Health:    maxHealth,
		MaxHealth: maxHealth,

		// Урон: случайная сотня + линейный рост от опыта.
		AttackDamage: src.Intn(playerExp/50+1)*100 + playerExp*2 + 100,

		HealingPotions:      playerExp/50 + src.Intn(2),
		HealingPotionHealth: maxHealth / 5, // 20% от максимума

		PoisonTurns: poisonTurnsForExp(playerExp),

		// Проценты от опыта. НЕ обрезаем при хранении: при опыте > 100
		// крит превышает 1.0, обрезка происходит в момент броска.
		CriticalChance: 0.01 * float64(playerExp),
		DodgeChance:    0.005 * float64(playerExp),
	}
	stats.OriginalHealingPotions = stats.HealingPotions

	e := &RandomEncounter{
		name:  "Дикий чародей",
		stats: stats,
		dice:  src,
	}

	logger.Log.WithFields(logrus.Fields{
		"component":    "enemy",
		"archetype":    "random_encounter",
		"player_exp":   playerExp,
		"max_health":   stats.MaxHealth,
		"attack":       stats.AttackDamage,
		"potions":      stats.HealingPotions,
		"poison_turns": stats.PoisonTurns,
	}).Debug("Random encounter enemy rolled")

	return e
}

// poisonTurnsForExp: опытные герои встречают более стойкий яд.
func poisonTurnsForExp(exp int) int {
	if exp >= 150 {
		return 3
	}
	return 2
}

func (e *RandomEncounter) Name() string {
	return e.name
}

func (e *RandomEncounter) Stats() *domain.CombatStats {
	return e.stats
}

// ExperienceGainOnDeath - опыт за победу. Деление до умножения намеренно:
// округление вниз на каждую неполную тысячу здоровья - часть баланса.
func (e *RandomEncounter) ExperienceGainOnDeath() int {
	return (e.stats.MaxHealth / 1000) * 5
}

// GenerateBattleAction - политика выбора хода.
//
// Порядок веток важен: один бросок d100 сравнивается с убывающими
// порогами, и первая сработавшая ветка выигрывает. Ветка яда (5%)
// пропускается целиком, если цель уже отравлена - тогда ее шанс
// перетекает к обычным ударам.
func (e *RandomEncounter) GenerateBattleAction(target *domain.CombatStats) domain.BattleAction {
	s := e.stats

	// Ниже половины здоровья и есть зелья: 25% шанс подлечиться.
	if s.Health < s.MaxHealth/2 && s.HealingPotions > 0 {
		if dice.Percent(e.dice) <= 25 {
			s.HealingPotions--
			return domain.BattleAction{
				Name:      actionHealingPotion,
				Kind:      domain.KindHealing,
				Magnitude: s.HealingPotionHealth,
			}
		}
	}

	choice := dice.Percent(e.dice)
	switch {
	case choice > 95 && !target.IsPoisoned():
		return domain.BattleAction{
			Name:      actionPoisonCloud,
			Kind:      domain.KindPoison,
			Magnitude: int(float64(s.AttackDamage) * domain.PoisonDamageMultiplier),
			Duration:  s.PoisonTurns,
		}
	case choice > 85:
		return domain.BattleAction{
			Name:      actionArcaneBurst,
			Kind:      domain.KindHit,
			Magnitude: s.AttackDamage + 50,
		}
	case choice > 50:
		return domain.BattleAction{
			Name:      actionFireBolt,
			Kind:      domain.KindHit,
			Magnitude: s.AttackDamage + 25,
		}
	default:
		return domain.BattleAction{
			Name:      actionMagicBolt,
			Kind:      domain.KindHit,
			Magnitude: s.AttackDamage,
		}
	}
}
