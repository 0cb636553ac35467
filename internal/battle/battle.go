// Package battle реализует пошаговый боевой резолвер:
// один герой против одного противника, ходы применяются парами.
package battle

import (
	"errors"
	"fmt"

	"arcana-server/internal/domain"
	"arcana-server/internal/enemy"
	"arcana-server/pkg/dice"
	"arcana-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// State - состояние боевого автомата.
type State uint8

const (
	// StateAwaitingInput - бой ждет выбора действия героя.
	StateAwaitingInput State = iota
	// StateResolving - идет применение пары действий (переходное).
	StateResolving
	// StateEnemyDefeated - терминальное: противник повержен.
	StateEnemyDefeated
	// StatePlayerDefeated - терминальное: герой погиб.
	StatePlayerDefeated
	// StateFled - терминальное: герой сбежал.
	StateFled
)

var stateToString = map[State]string{
	StateAwaitingInput:  "AWAITING_INPUT",
	StateResolving:      "RESOLVING",
	StateEnemyDefeated:  "ENEMY_DEFEATED",
	StatePlayerDefeated: "PLAYER_DEFEATED",
	StateFled:           "FLED",
}

func (s State) String() string {
	if v, ok := stateToString[s]; ok {
		return v
	}
	return "UNKNOWN"
}

// Результаты боя для контроллера мира.
const (
	OutcomeEnemyDefeated  = "ENEMY_DEFEATED"
	OutcomePlayerDefeated = "PLAYER_DEFEATED"
	OutcomeFled           = "FLED"
)

// Outcome - итог завершенного боя.
type Outcome struct {
	Result           string
	ExperienceGained int
}

// TurnReport - что произошло за один ход (для логов и клиента).
type TurnReport struct {
	Turn     int
	Messages []string
	Outcome  *Outcome // nil, пока бой продолжается
}

// Ошибки валидации ввода: состояние боя не изменено, нужно переспросить.
var (
	ErrBattleOver    = errors.New("battle is already over")
	ErrNoPotionsLeft = errors.New("no healing potions left")
	ErrUnknownAction = errors.New("unknown battle action")
)

// Battle - один инстанс боя. Живет от стычки до терминального состояния,
// владеет статами противника; статы героя принадлежат миру и переживают бой.
type Battle struct {
	Player *domain.Entity
	Foe    enemy.Enemy

	state State
	turn  int
	dice  dice.Source

	log *logrus.Entry
}

// New создает бой. Сущность героя должна иметь CombatStats.
func New(player *domain.Entity, foe enemy.Enemy, src dice.Source) *Battle {
	return &Battle{
		Player: player,
		Foe:    foe,
		state:  StateAwaitingInput,
		turn:   1,
		dice:   src,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "battle",
			"player":    player.Name,
			"enemy":     foe.Name(),
		}),
	}
}

func (b *Battle) State() State { return b.state }
func (b *Battle) Turn() int    { return b.turn }

// IsOver - достигнуто ли терминальное состояние.
func (b *Battle) IsOver() bool {
	return b.state == StateEnemyDefeated || b.state == StatePlayerDefeated || b.state == StateFled
}

// ResolveTurn применяет один боевой ход: действие героя и ответ противника.
//
// Порядок разрешения фиксированный: ответ противника ВЫБИРАЕТСЯ по состоянию
// на начало хода (до применения действия героя), затем действие героя
// применяется первым. Если противник погиб от действия героя, его уже
// выбранное действие не исполняется. Урон от яда и счетчики эффектов
// тикают в конце хода, после обоих действий.
func (b *Battle) ResolveTurn(playerAction domain.BattleAction) (*TurnReport, error) {
	if b.IsOver() {
		return nil, ErrBattleOver
	}

	playerStats := b.Player.Stats
	foeStats := b.Foe.Stats()

	// Валидация до любых изменений состояния (отказ = переспросить ввод).
	if playerAction.Kind == domain.KindUnknown {
		return nil, ErrUnknownAction
	}
	if playerAction.Kind == domain.KindHealing {
		if !playerStats.UsePotion() {
			return nil, ErrNoPotionsLeft
		}
	}

	b.state = StateResolving
	report := &TurnReport{Turn: b.turn}

	// Ответ противника выбирается до применения действий:
	// политика видит то же преходовое состояние, что и герой.
	foeAction := b.Foe.GenerateBattleAction(playerStats)

	b.applyAction(report, b.Player.Name, b.Foe.Name(), playerAction, playerStats, foeStats)
	if !foeStats.IsDead {
		b.applyAction(report, b.Foe.Name(), b.Player.Name, foeAction, foeStats, playerStats)
	}

	// Конец хода: яд и счетчики эффектов.
	if dmg := playerStats.TickEffects(); dmg > 0 {
		report.Messages = append(report.Messages, fmt.Sprintf("Яд отнимает у вас %d здоровья.", dmg))
	}
	if dmg := foeStats.TickEffects(); dmg > 0 {
		report.Messages = append(report.Messages, fmt.Sprintf("Яд отнимает у %s %d здоровья.", b.Foe.Name(), dmg))
	}

	b.finishTurn(report)
	return report, nil
}

// AttemptFlee - попытка сбежать из боя. При неудаче противник
// получает свободное действие, и ход завершается как обычно.
func (b *Battle) AttemptFlee() (*TurnReport, error) {
	if b.IsOver() {
		return nil, ErrBattleOver
	}

	b.state = StateResolving
	report := &TurnReport{Turn: b.turn}

	if dice.Percent(b.dice) <= domain.FleeChancePercent {
		b.state = StateFled
		report.Outcome = &Outcome{Result: OutcomeFled}
		report.Messages = append(report.Messages, "Вы сбегаете из боя.")
		b.log.WithField("turn", b.turn).Info("Player fled the battle")
		return report, nil
	}

	report.Messages = append(report.Messages, "Сбежать не удалось!")

	playerStats := b.Player.Stats
	foeStats := b.Foe.Stats()

	foeAction := b.Foe.GenerateBattleAction(playerStats)
	b.applyAction(report, b.Foe.Name(), b.Player.Name, foeAction, foeStats, playerStats)

	if dmg := playerStats.TickEffects(); dmg > 0 {
		report.Messages = append(report.Messages, fmt.Sprintf("Яд отнимает у вас %d здоровья.", dmg))
	}
	if dmg := foeStats.TickEffects(); dmg > 0 {
		report.Messages = append(report.Messages, fmt.Sprintf("Яд отнимает у %s %d здоровья.", b.Foe.Name(), dmg))
	}

	b.finishTurn(report)
	return report, nil
}

// applyAction применяет одно действие. Для ударов бросаются уклонение
// защищающегося и крит атакующего; активная защита режет остаток урона.
// Защита, поставленная в этом же ходу, действует сразу.
func (b *Battle) applyAction(report *TurnReport, actorName, targetName string, action domain.BattleAction, actor, target *domain.CombatStats) {
	actionLogger := b.log.WithFields(logrus.Fields{
		"turn":   b.turn,
		"actor":  actorName,
		"action": action.Name,
		"kind":   action.Kind.String(),
	})

	switch action.Kind {
	case domain.KindHit:
		// Уклонение проверяется первым: уклонился - урона нет.
		if dice.Chance(b.dice, target.DodgeChance) {
			actionLogger.Info("Hit dodged")
			report.Messages = append(report.Messages, fmt.Sprintf("%s уклоняется от %s!", targetName, action.Name))
			return
		}

		damage := action.Magnitude
		critical := dice.Chance(b.dice, actor.CriticalChance)
		if critical {
			damage = int(float64(damage) * domain.CriticalHitMultiplier)
		}
		protected := target.IsProtected()
		if protected {
			damage = int(float64(damage) * domain.ProtectionFactor)
		}

		healthBefore := target.Health
		died := target.TakeDamage(damage)

		actionLogger.WithFields(logrus.Fields{
			"base_damage":   action.Magnitude,
			"critical":      critical,
			"protected":     protected,
			"final_damage":  damage,
			"health_before": healthBefore,
			"health_after":  target.Health,
			"target_died":   died,
		}).Info("Hit resolved")

		msg := fmt.Sprintf("%s применяет %s: %d урона по %s.", actorName, action.Name, damage, targetName)
		if critical {
			msg = fmt.Sprintf("%s применяет %s: КРИТИЧЕСКИЙ удар, %d урона по %s!", actorName, action.Name, damage, targetName)
		}
		report.Messages = append(report.Messages, msg)

	case domain.KindHealing:
		healthBefore := actor.Health
		actor.Heal(action.Magnitude)
		healed := actor.Health - healthBefore

		actionLogger.WithFields(logrus.Fields{
			"requested": action.Magnitude,
			"healed":    healed,
		}).Info("Healing resolved")

		report.Messages = append(report.Messages, fmt.Sprintf("%s восстанавливает %d здоровья.", actorName, healed))

	case domain.KindPoison:
		target.ApplyPoison(action.Magnitude, action.Duration)

		actionLogger.WithFields(logrus.Fields{
			"poison_damage": action.Magnitude,
			"poison_turns":  action.Duration,
		}).Info("Poison applied")

		report.Messages = append(report.Messages, fmt.Sprintf("%s отравляет %s на %d ходов.", actorName, targetName, action.Duration))

	case domain.KindProtection:
		actor.ApplyProtection(action.Duration)
		actionLogger.WithField("protection_turns", action.Duration).Info("Protection applied")
		report.Messages = append(report.Messages, fmt.Sprintf("%s окружает себя защитой на %d ходов.", actorName, action.Duration))

	default:
		actionLogger.Warn("Unknown action kind, turn wasted")
	}
}

// finishTurn выполняет терминальную проверку и продвигает автомат.
// Гибель противника проверяется первой: при взаимном KO побеждает герой.
func (b *Battle) finishTurn(report *TurnReport) {
	if report.Outcome != nil {
		return // бой уже завершен (побег)
	}

	foeStats := b.Foe.Stats()
	playerStats := b.Player.Stats

	switch {
	case foeStats.IsDead:
		b.state = StateEnemyDefeated
		exp := b.Foe.ExperienceGainOnDeath()
		report.Outcome = &Outcome{Result: OutcomeEnemyDefeated, ExperienceGained: exp}
		report.Messages = append(report.Messages, fmt.Sprintf("%s повержен! Получено %d опыта.", b.Foe.Name(), exp))
		b.log.WithFields(logrus.Fields{
			"turn":       b.turn,
			"exp_gained": exp,
		}).Info("Enemy defeated")

	case playerStats.IsDead:
		b.state = StatePlayerDefeated
		report.Outcome = &Outcome{Result: OutcomePlayerDefeated}
		report.Messages = append(report.Messages, "Вы погибаете...")
		b.log.WithField("turn", b.turn).Info("Player defeated")

	default:
		b.state = StateAwaitingInput
		b.turn++
	}
}
