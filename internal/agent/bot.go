package agent

import (
	"encoding/json"
	"math/rand"

	"arcana-server/internal/engine"
	"arcana-server/pkg/api"
	"arcana-server/pkg/logger"
	"arcana-server/pkg/utils"
)

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Этот код является примером ВНЕШНЕГО клиента: он подключается к серверу
// так же, как обычный игрок, получает обновления мира и на их основе
// решает, какую команду отправить обратно. Прямых обращений к состоянию
// движка у него нет - только DTO из пакета api.
//
// Жизненный цикл:
//  1. NewBot -> Регистрация в хабе сервера, получение личного канала (Inbox).
//  2. Run -> Запуск в отдельной горутине, слушает свой Inbox.
//  3. Вне боя бот ходит раз в мировой тик; в бою - раз в боевой ход.
type Bot struct {
	SessionID string
	Service   *engine.GameService // Прямая ссылка на движок (для простоты в этом проекте)
	Inbox     chan api.ServerResponse

	rng *rand.Rand

	// Темп бота: реагируем на смену тика/хода, а не на каждый кадр,
	// иначе бот зациклится на собственных обновлениях.
	lastTick int
	lastTurn int
	lastMode string
}

func NewBot(sessionID string, service *engine.GameService) *Bot {
	logger.Log.WithField("session", sessionID).Info("Creating headless agent")
	return &Bot{
		SessionID: sessionID,
		Service:   service,
		Inbox:     service.Hub.Register(sessionID),
		// Сид зависит только от имени сессии: бот с тем же именем
		// ходит одинаково и в Live-режиме, и при отладке.
		rng:      rand.New(rand.NewSource(utils.StringToSeed(sessionID))),
		lastTick: -1,
		lastTurn: -1,
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run() {
	defer b.Service.Hub.Unregister(b.SessionID)

	b.Service.ProcessCommand(api.ClientCommand{Action: "INIT", Token: b.SessionID})

	for state := range b.Inbox {
		if b.shouldAct(state) {
			b.makeMove(state)
		}
	}
	logger.Log.WithField("session", b.SessionID).Info("Agent shut down")
}

// shouldAct решает, наступил ли для бота новый "момент хода".
func (b *Bot) shouldAct(state api.ServerResponse) bool {
	defer func() {
		b.lastTick = state.Tick
		b.lastMode = state.Mode
		if state.Battle != nil {
			b.lastTurn = state.Battle.Turn
		}
	}()

	// Вход в бой - ходим сразу.
	if state.Mode == api.ModeBattle && b.lastMode != api.ModeBattle {
		return true
	}
	// В бою - по смене боевого хода.
	if state.Mode == api.ModeBattle && state.Battle != nil {
		return state.Battle.Turn != b.lastTurn
	}
	// Вне боя - по смене мирового тика.
	return state.Tick != b.lastTick
}

// makeMove - мозг бота: решение на основе полученного состояния мира.
func (b *Bot) makeMove(state api.ServerResponse) {
	if state.Mode == api.ModeBattle && state.Battle != nil {
		b.fight(state)
		return
	}
	b.wander()
}

// fight играет боевой ход: зелье при низком здоровье, яд на чистую
// цель, иначе самый тяжелый удар.
func (b *Bot) fight(state api.ServerResponse) {
	me := state.Player
	if me == nil || me.Stats == nil {
		return
	}

	available := map[string]api.ActionView{}
	for _, a := range state.Battle.Actions {
		if a.Available {
			available[a.Name] = a
		}
	}

	if me.Stats.Health < me.Stats.MaxHealth*3/10 {
		if _, ok := available["Healing Potion"]; ok {
			b.sendCommand("POTION", nil)
			return
		}
	}

	enemyPoisoned := state.Battle.Enemy.Stats != nil && state.Battle.Enemy.Stats.PoisonTurns > 0
	if !enemyPoisoned {
		if _, ok := available["Poison Cloud"]; ok {
			b.sendCast("Poison Cloud")
			return
		}
	}

	b.sendCast("Arcane Burst")
}

// wander делает случайный шаг по полю.
func (b *Bot) wander() {
	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	d := dirs[b.rng.Intn(len(dirs))]
	b.sendCommand("MOVE", api.DirectionPayload{Dx: d[0], Dy: d[1]})
}

// --- Хелперы для отправки команд на сервер ---

func (b *Bot) sendCommand(action string, payload interface{}) {
	var payloadBytes json.RawMessage
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			logger.Log.WithError(err).Error("Agent failed to marshal payload")
			return
		}
		payloadBytes = raw
	}

	b.Service.ProcessCommand(api.ClientCommand{
		Action:  action,
		Payload: payloadBytes,
		Token:   b.SessionID,
	})
}

func (b *Bot) sendCast(name string) {
	b.sendCommand("CAST", api.SpellPayload{Name: name})
}
