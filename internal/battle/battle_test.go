package battle

import (
	"testing"

	"arcana-server/internal/domain"
)

// stubFoe - противник со сценарием действий для детерминированных тестов.
type stubFoe struct {
	name    string
	stats   *domain.CombatStats
	actions []domain.BattleAction
	pos     int
}

func (f *stubFoe) Name() string               { return f.name }
func (f *stubFoe) Stats() *domain.CombatStats { return f.stats }
func (f *stubFoe) ExperienceGainOnDeath() int { return (f.stats.MaxHealth / 1000) * 5 }

func (f *stubFoe) GenerateBattleAction(_ *domain.CombatStats) domain.BattleAction {
	if f.pos >= len(f.actions) {
		return domain.BattleAction{Name: "Magic Bolt", Kind: domain.KindHit, Magnitude: f.stats.AttackDamage}
	}
	a := f.actions[f.pos]
	f.pos++
	return a
}

// fixedDice всегда возвращает одно значение (0 = ни критов, ни уклонений
// при нулевых шансах; Float64()=0.99 не сработает для p<0.99).
type fixedDice struct {
	intn  int
	float float64
}

func (d fixedDice) Intn(n int) int   { return d.intn % n }
func (d fixedDice) Float64() float64 { return d.float }

func newTestPlayer(health int) *domain.Entity {
	return &domain.Entity{
		ID:   "hero_1",
		Name: "Герой",
		Type: domain.EntityTypePlayer,
		Stats: &domain.CombatStats{
			Health:    health,
			MaxHealth: health,

			AttackDamage:           300,
			HealingPotions:         3,
			OriginalHealingPotions: 3,
			HealingPotionHealth:    1000,
			PoisonTurns:            2,
		},
	}
}

func hit(name string, magnitude int) domain.BattleAction {
	return domain.BattleAction{Name: name, Kind: domain.KindHit, Magnitude: magnitude}
}

func TestResolveTurn_UnmitigatedHit(t *testing.T) {
	// Сквозной сценарий: враг 2000 HP, удар ровно на 150,
	// без уклонений и критов -> 1850.
	player := newTestPlayer(5000)
	foe := &stubFoe{
		name:    "Слизень",
		stats:   &domain.CombatStats{Health: 2000, MaxHealth: 2000, AttackDamage: 150},
		actions: []domain.BattleAction{hit("Magic Bolt", 150)},
	}

	b := New(player, foe, fixedDice{float: 0.99})

	report, err := b.ResolveTurn(hit("Magic Bolt", 150))
	if err != nil {
		t.Fatalf("ResolveTurn failed: %v", err)
	}

	if foe.stats.Health != 1850 {
		t.Errorf("Expected foe health 1850, got %d", foe.stats.Health)
	}
	if player.Stats.Health != 5000-150 {
		t.Errorf("Expected player health 4850, got %d", player.Stats.Health)
	}
	if b.State() != StateAwaitingInput {
		t.Errorf("Battle must continue, state %v", b.State())
	}
	if report.Outcome != nil {
		t.Error("No outcome expected while battle continues")
	}
	if b.Turn() != 2 {
		t.Errorf("Expected turn 2, got %d", b.Turn())
	}
}

func TestResolveTurn_EnemyDefeatedOutcome(t *testing.T) {
	player := newTestPlayer(5000)
	foe := &stubFoe{
		name:  "Слизень",
		stats: &domain.CombatStats{Health: 100, MaxHealth: 2000, AttackDamage: 150},
	}

	b := New(player, foe, fixedDice{float: 0.99})

	report, err := b.ResolveTurn(hit("Magic Bolt", 300))
	if err != nil {
		t.Fatalf("ResolveTurn failed: %v", err)
	}

	if b.State() != StateEnemyDefeated {
		t.Fatalf("Expected ENEMY_DEFEATED, got %v", b.State())
	}
	if report.Outcome == nil || report.Outcome.Result != OutcomeEnemyDefeated {
		t.Fatal("Expected ENEMY_DEFEATED outcome")
	}
	// (2000/1000)*5 = 10, деление до умножения.
	if report.Outcome.ExperienceGained != 10 {
		t.Errorf("Expected 10 experience, got %d", report.Outcome.ExperienceGained)
	}

	// Убитый противник не наносит ответный удар.
	if player.Stats.Health != 5000 {
		t.Errorf("Dead foe must not strike back, player health %d", player.Stats.Health)
	}

	// Терминальное состояние: дальнейшие ходы отклоняются.
	if _, err := b.ResolveTurn(hit("Magic Bolt", 300)); err != ErrBattleOver {
		t.Errorf("Expected ErrBattleOver, got %v", err)
	}
}

func TestResolveTurn_PlayerDefeatedOutcome(t *testing.T) {
	player := newTestPlayer(100)
	foe := &stubFoe{
		name:    "Слизень",
		stats:   &domain.CombatStats{Health: 2000, MaxHealth: 2000, AttackDamage: 150},
		actions: []domain.BattleAction{hit("Magic Bolt", 150)},
	}

	b := New(player, foe, fixedDice{float: 0.99})

	report, err := b.ResolveTurn(hit("Magic Bolt", 10))
	if err != nil {
		t.Fatalf("ResolveTurn failed: %v", err)
	}

	if b.State() != StatePlayerDefeated {
		t.Fatalf("Expected PLAYER_DEFEATED, got %v", b.State())
	}
	if report.Outcome == nil || report.Outcome.Result != OutcomePlayerDefeated {
		t.Fatal("Expected PLAYER_DEFEATED outcome")
	}
	if report.Outcome.ExperienceGained != 0 {
		t.Error("No experience on player defeat")
	}
}

func TestResolveTurn_UnknownActionRejected(t *testing.T) {
	player := newTestPlayer(5000)
	foe := &stubFoe{
		name:  "Слизень",
		stats: &domain.CombatStats{Health: 2000, MaxHealth: 2000, AttackDamage: 150},
	}

	b := New(player, foe, fixedDice{float: 0.99})

	_, err := b.ResolveTurn(domain.BattleAction{Name: "???"})
	if err != ErrUnknownAction {
		t.Fatalf("Expected ErrUnknownAction, got %v", err)
	}
	if b.Turn() != 1 || b.State() != StateAwaitingInput {
		t.Error("Rejected action must not advance the battle")
	}
}

func TestResolveTurn_PotionRejectedWhenEmpty(t *testing.T) {
	player := newTestPlayer(5000)
	player.Stats.HealingPotions = 0
	player.Stats.Health = 1000

	foe := &stubFoe{
		name:  "Слизень",
		stats: &domain.CombatStats{Health: 2000, MaxHealth: 2000, AttackDamage: 150},
	}

	b := New(player, foe, fixedDice{float: 0.99})

	_, err := b.ResolveTurn(domain.BattleAction{Name: "Healing Potion", Kind: domain.KindHealing, Magnitude: 1000})
	if err != ErrNoPotionsLeft {
		t.Fatalf("Expected ErrNoPotionsLeft, got %v", err)
	}

	// Отказ без изменения состояния: ход не потрачен, здоровье не тронуто.
	if b.State() != StateAwaitingInput {
		t.Errorf("State must stay AWAITING_INPUT, got %v", b.State())
	}
	if b.Turn() != 1 {
		t.Errorf("Turn must not advance, got %d", b.Turn())
	}
	if player.Stats.Health != 1000 || foe.stats.Health != 2000 {
		t.Error("Rejected action must not change any health")
	}
}

func TestResolveTurn_HealingClamps(t *testing.T) {
	player := newTestPlayer(5000)
	player.Stats.Health = 4800

	foe := &stubFoe{
		name:    "Слизень",
		stats:   &domain.CombatStats{Health: 2000, MaxHealth: 2000, AttackDamage: 0},
		actions: []domain.BattleAction{hit("Magic Bolt", 0)},
	}

	b := New(player, foe, fixedDice{float: 0.99})

	_, err := b.ResolveTurn(domain.BattleAction{Name: "Healing Potion", Kind: domain.KindHealing, Magnitude: 1000})
	if err != nil {
		t.Fatalf("ResolveTurn failed: %v", err)
	}

	if player.Stats.Health != 5000 {
		t.Errorf("Healing must clamp to max, got %d", player.Stats.Health)
	}
	if player.Stats.HealingPotions != 2 {
		t.Errorf("Expected 2 potions left, got %d", player.Stats.HealingPotions)
	}
}

func TestResolveTurn_PoisonTicksAndExpires(t *testing.T) {
	player := newTestPlayer(5000)
	foe := &stubFoe{
		name:  "Слизень",
		stats: &domain.CombatStats{Health: 4000, MaxHealth: 4000, AttackDamage: 0},
		actions: []domain.BattleAction{
			hit("Magic Bolt", 0), hit("Magic Bolt", 0), hit("Magic Bolt", 0),
		},
	}

	b := New(player, foe, fixedDice{float: 0.99})

	// Ход 1: яд на 2 хода по 100. Первый тик - в конце этого же хода.
	_, err := b.ResolveTurn(domain.BattleAction{Name: "Poison Cloud", Kind: domain.KindPoison, Magnitude: 100, Duration: 2})
	if err != nil {
		t.Fatalf("ResolveTurn failed: %v", err)
	}
	if foe.stats.Health != 3900 {
		t.Errorf("Turn 1: expected 3900 after poison tick, got %d", foe.stats.Health)
	}
	if !foe.stats.IsPoisoned() {
		t.Error("Turn 1: poison must still be active")
	}

	// Ход 2: второй тик, яд истекает.
	if _, err := b.ResolveTurn(hit("Magic Bolt", 0)); err != nil {
		t.Fatalf("ResolveTurn failed: %v", err)
	}
	if foe.stats.Health != 3800 {
		t.Errorf("Turn 2: expected 3800, got %d", foe.stats.Health)
	}
	if foe.stats.IsPoisoned() {
		t.Error("Turn 2: poison must have expired")
	}

	// Ход 3: тиков больше нет.
	if _, err := b.ResolveTurn(hit("Magic Bolt", 0)); err != nil {
		t.Fatalf("ResolveTurn failed: %v", err)
	}
	if foe.stats.Health != 3800 {
		t.Errorf("Turn 3: expected 3800, got %d", foe.stats.Health)
	}
}

func TestResolveTurn_MutualPoisonKOFavorsPlayer(t *testing.T) {
	// Обе стороны травят друг друга, и тик яда в конце хода убивает
	// обоих одновременно. Гибель противника проверяется первой,
	// поэтому взаимное KO - победа героя с полной наградой опыта.
	player := newTestPlayer(5000)
	player.Stats.Health = 50

	foe := &stubFoe{
		name:  "Слизень",
		stats: &domain.CombatStats{Health: 100, MaxHealth: 2000, AttackDamage: 0},
		actions: []domain.BattleAction{
			{Name: "Poison Cloud", Kind: domain.KindPoison, Magnitude: 75, Duration: 2},
		},
	}

	b := New(player, foe, fixedDice{float: 0.99})

	report, err := b.ResolveTurn(domain.BattleAction{Name: "Poison Cloud", Kind: domain.KindPoison, Magnitude: 150, Duration: 2})
	if err != nil {
		t.Fatalf("ResolveTurn failed: %v", err)
	}

	if !player.Stats.IsDead || !foe.stats.IsDead {
		t.Fatal("Both sides must die to the poison tick")
	}
	if b.State() != StateEnemyDefeated {
		t.Fatalf("Mutual KO must resolve as ENEMY_DEFEATED, got %v", b.State())
	}
	if report.Outcome == nil || report.Outcome.Result != OutcomeEnemyDefeated {
		t.Fatal("Expected ENEMY_DEFEATED outcome")
	}
	if report.Outcome.ExperienceGained != 10 {
		t.Errorf("Mutual KO must still award experience, got %d", report.Outcome.ExperienceGained)
	}
}

func TestResolveTurn_ProtectionHalvesDamage(t *testing.T) {
	player := newTestPlayer(5000)
	foe := &stubFoe{
		name:  "Слизень",
		stats: &domain.CombatStats{Health: 2000, MaxHealth: 2000, AttackDamage: 400},
		actions: []domain.BattleAction{
			hit("Magic Bolt", 400), hit("Magic Bolt", 400),
		},
	}

	b := New(player, foe, fixedDice{float: 0.99})

	// Ход 1: герой ставит защиту; удар этого же хода уже ослаблен.
	_, err := b.ResolveTurn(domain.BattleAction{Name: "Ward", Kind: domain.KindProtection, Duration: 3})
	if err != nil {
		t.Fatalf("ResolveTurn failed: %v", err)
	}
	if player.Stats.Health != 5000-200 {
		t.Errorf("Turn 1: expected halved damage (200), health %d", player.Stats.Health)
	}

	// Ход 2: защита еще действует.
	if _, err := b.ResolveTurn(hit("Magic Bolt", 0)); err != nil {
		t.Fatalf("ResolveTurn failed: %v", err)
	}
	if player.Stats.Health != 4800-200 {
		t.Errorf("Turn 2: expected halved damage again, health %d", player.Stats.Health)
	}
}

func TestResolveTurn_DodgeAndCritical(t *testing.T) {
	// Float64()=0 < любой положительной вероятности: при DodgeChance=1
	// каждый удар по герою уходит в молоко, при CriticalChance=1 герой
	// всегда критует.
	player := newTestPlayer(5000)
	player.Stats.DodgeChance = 1.0
	player.Stats.CriticalChance = 1.0

	foe := &stubFoe{
		name:    "Слизень",
		stats:   &domain.CombatStats{Health: 2000, MaxHealth: 2000, AttackDamage: 400},
		actions: []domain.BattleAction{hit("Magic Bolt", 400)},
	}

	b := New(player, foe, fixedDice{float: 0})

	if _, err := b.ResolveTurn(hit("Magic Bolt", 150)); err != nil {
		t.Fatalf("ResolveTurn failed: %v", err)
	}

	// Крит: 150 * 2 = 300.
	if foe.stats.Health != 2000-300 {
		t.Errorf("Expected critical 300 damage, foe health %d", foe.stats.Health)
	}
	// Уклонение: герой не получил урона.
	if player.Stats.Health != 5000 {
		t.Errorf("Expected dodge, player health %d", player.Stats.Health)
	}
}

func TestAttemptFlee(t *testing.T) {
	t.Run("successful escape", func(t *testing.T) {
		player := newTestPlayer(5000)
		foe := &stubFoe{
			name:  "Слизень",
			stats: &domain.CombatStats{Health: 2000, MaxHealth: 2000, AttackDamage: 400},
		}

		// Percent = Intn(100)+1 = 50 <= 50: побег удался.
		b := New(player, foe, fixedDice{intn: 49, float: 0.99})

		report, err := b.AttemptFlee()
		if err != nil {
			t.Fatalf("AttemptFlee failed: %v", err)
		}
		if b.State() != StateFled {
			t.Fatalf("Expected FLED, got %v", b.State())
		}
		if report.Outcome == nil || report.Outcome.Result != OutcomeFled {
			t.Fatal("Expected FLED outcome")
		}
		if player.Stats.Health != 5000 {
			t.Error("Successful escape must not cost health")
		}
	})

	t.Run("failed escape costs a free enemy action", func(t *testing.T) {
		player := newTestPlayer(5000)
		foe := &stubFoe{
			name:    "Слизень",
			stats:   &domain.CombatStats{Health: 2000, MaxHealth: 2000, AttackDamage: 400},
			actions: []domain.BattleAction{hit("Magic Bolt", 400)},
		}

		// Percent = 51 > 50: побег провален.
		b := New(player, foe, fixedDice{intn: 50, float: 0.99})

		report, err := b.AttemptFlee()
		if err != nil {
			t.Fatalf("AttemptFlee failed: %v", err)
		}
		if b.State() != StateAwaitingInput {
			t.Fatalf("Failed escape must continue the battle, got %v", b.State())
		}
		if report.Outcome != nil {
			t.Error("No outcome expected on failed escape")
		}
		if player.Stats.Health != 5000-400 {
			t.Errorf("Enemy free action expected, player health %d", player.Stats.Health)
		}
		if foe.stats.Health != 2000 {
			t.Error("Failed escape must not damage the enemy")
		}
	})
}
