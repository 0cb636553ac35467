package domain

// CombatStats - Боевые характеристики и активные эффекты.
// Общий компонент героя и всех вариантов врагов.
type CombatStats struct {
	Health    int `json:"health"`
	MaxHealth int `json:"maxHealth"`

	AttackDamage int `json:"attackDamage"`

	HealingPotions         int `json:"healingPotions"`
	OriginalHealingPotions int `json:"originalHealingPotions"`
	HealingPotionHealth    int `json:"healingPotionHealth"`

	// PoisonTurns - шаблон длительности яда, который ЭТА сущность
	// накладывает на противника (не путать с PoisonTurnsRemaining).
	PoisonTurns int `json:"poisonTurns"`

	// Вероятности в [0,1]. Могут выходить за 1.0 при большом опыте -
	// обрезаются в момент броска, а не при хранении.
	CriticalChance float64 `json:"criticalChance"`
	DodgeChance    float64 `json:"dodgeChance"`

	// Активные эффекты
	PoisonTurnsRemaining     int `json:"poisonTurnsRemaining"`
	PoisonDamagePerTurn      int `json:"poisonDamagePerTurn"`
	ProtectionTurnsRemaining int `json:"protectionTurnsRemaining"`

	IsDead bool `json:"isDead"`
}

// TakeDamage наносит урон. Возвращает true, если цель погибла.
func (s *CombatStats) TakeDamage(amount int) bool {
	if s.IsDead {
		return false
	}

	if amount < 0 {
		amount = 0
	}

	s.Health -= amount

	if s.Health <= 0 {
		s.Health = 0
		s.IsDead = true
		return true
	}
	return false
}

// Heal лечит сущность. Здоровье никогда не превышает максимум.
func (s *CombatStats) Heal(amount int) {
	if s.IsDead {
		return // Не лечим трупы! Нет некромантии!
	}
	if amount < 0 {
		return
	}
	s.Health += amount
	if s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
}

// UsePotion списывает одно зелье. Возвращает false, если зелий не осталось -
// состояние при этом не меняется, вызывающий должен переспросить ввод.
func (s *CombatStats) UsePotion() bool {
	if s.HealingPotions <= 0 {
		return false
	}
	s.HealingPotions--
	return true
}

// IsPoisoned - сущность отравлена, пока остались ходы яда.
func (s *CombatStats) IsPoisoned() bool {
	return s.PoisonTurnsRemaining > 0
}

// IsProtected - активен ли защитный эффект.
func (s *CombatStats) IsProtected() bool {
	return s.ProtectionTurnsRemaining > 0
}

// ApplyPoison накладывает или обновляет яд на сущности.
func (s *CombatStats) ApplyPoison(damagePerTurn, turns int) {
	if s.IsDead {
		return
	}
	s.PoisonDamagePerTurn = damagePerTurn
	s.PoisonTurnsRemaining = turns
}

// ApplyProtection включает защитный эффект на указанное число ходов.
func (s *CombatStats) ApplyProtection(turns int) {
	if s.IsDead {
		return
	}
	s.ProtectionTurnsRemaining = turns
}

// TickEffects применяет поэтапные эффекты в конце хода:
// урон от яда и уменьшение счетчиков. Возвращает нанесенный ядом урон.
func (s *CombatStats) TickEffects() int {
	if s.IsDead {
		return 0
	}

	poisonDamage := 0
	if s.PoisonTurnsRemaining > 0 {
		poisonDamage = s.PoisonDamagePerTurn
		s.TakeDamage(poisonDamage)
		s.PoisonTurnsRemaining--
		if s.PoisonTurnsRemaining == 0 {
			s.PoisonDamagePerTurn = 0
		}
	}

	if s.ProtectionTurnsRemaining > 0 {
		s.ProtectionTurnsRemaining--
	}

	return poisonDamage
}

// Clone возвращает независимую копию (герой и враг не должны алиаситься).
func (s *CombatStats) Clone() *CombatStats {
	c := *s
	return &c
}
