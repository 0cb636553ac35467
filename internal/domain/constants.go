package domain

// Типы сущностей
const (
	EntityTypePlayer = "PLAYER"
	EntityTypeEnemy  = "ENEMY"
)

// Боевые коэффициенты
const (
	// PoisonDamageMultiplier - доля базового урона, наносимая ядом каждый ход.
	PoisonDamageMultiplier = 0.5

	// CriticalHitMultiplier - во сколько раз усиливается критический удар.
	CriticalHitMultiplier = 2.0

	// ProtectionFactor - доля входящего урона при активной защите.
	ProtectionFactor = 0.5

	// ProtectionDuration - длительность защитного эффекта героя в ходах.
	ProtectionDuration = 3

	// FleeChancePercent - шанс сбежать из боя (d100 <= N).
	FleeChancePercent = 50
)

// Параметры мира
const (
	// EncounterChancePercent - шанс случайной стычки на каждый шаг (d100 <= N).
	EncounterChancePercent = 10

	// ExploreRegenPerTick - пассивный реген здоровья за мировой тик вне боя.
	ExploreRegenPerTick = 25
)

// Стартовые характеристики героя
const (
	PlayerMaxHealth           = 5000
	PlayerAttackDamage        = 300
	PlayerHealingPotions      = 3
	PlayerHealingPotionHealth = 1000
	PlayerPoisonTurns         = 2
	PlayerCriticalChance      = 0.10
	PlayerDodgeChance         = 0.05
)
