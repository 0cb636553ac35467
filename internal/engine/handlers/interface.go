package handlers

import (
	"encoding/json"

	"arcana-server/internal/battle"
	"arcana-server/internal/domain"
	"arcana-server/pkg/dice"
)

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	World  *domain.WorldMap
	Player *domain.Entity

	// Battle - текущий бой. nil в режиме исследования.
	Battle *battle.Battle

	// Dice - источник случайности сессии (общий с боем и генерацией).
	Dice dice.Source
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую и НЕ управляет жизненным
// циклом боя: он возвращает данные, сервис решает.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, COMBAT, ERROR)

	// Messages - построчный отчет боевого хода (каждая строка - COMBAT лог).
	Messages []string

	// Encounter true, если шаг героя вызвал случайную стычку.
	Encounter bool

	// Outcome не nil, если бой завершился на этом действии.
	Outcome *battle.Outcome
}

// HandlerFunc - это контракт для любой команды (MOVE, CAST, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// BattleResult конвертирует отчет боевого хода в Result.
func BattleResult(report *battle.TurnReport) Result {
	return Result{
		MsgType:  "COMBAT",
		Messages: report.Messages,
		Outcome:  report.Outcome,
	}
}
