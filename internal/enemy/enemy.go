// Package enemy содержит архетипы противников и их боевые политики.
// Каждый архетип - отдельный тип, реализующий интерфейс Enemy;
// никакого наследования, только набор способностей.
package enemy

import "arcana-server/internal/domain"

// Enemy - контракт любого противника для боевого резолвера.
type Enemy interface {
	// Name - имя противника для логов и клиента.
	Name() string

	// Stats - боевые характеристики. Резолвер мутирует их напрямую
	// (урон, лечение, эффекты) в течение одного боя.
	Stats() *domain.CombatStats

	// GenerateBattleAction выбирает следующее действие противника,
	// глядя на текущее состояние цели (героя).
	GenerateBattleAction(target *domain.CombatStats) domain.BattleAction

	// ExperienceGainOnDeath - сколько опыта получает герой за победу.
	ExperienceGainOnDeath() int
}
