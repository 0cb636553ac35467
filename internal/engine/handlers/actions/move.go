package actions

import (
	"arcana-server/internal/domain"
	"arcana-server/internal/engine/handlers"
	"arcana-server/pkg/api"
	"arcana-server/pkg/dice"
)

// HandleMove делает шаг по миру. Каждый успешный шаг бросает кубик
// случайной стычки; сам бой создает сервис по флагу Encounter.
func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	if ctx.Battle != nil {
		return handlers.Result{Msg: "В бою нельзя перемещаться.", MsgType: "ERROR"}, nil
	}

	newX := ctx.Player.Pos.X + p.Dx
	newY := ctx.Player.Pos.Y + p.Dy

	if ctx.World.IsBlocked(newX, newY) {
		return handlers.Result{Msg: "Путь прегражден.", MsgType: "ERROR"}, nil
	}

	ctx.Player.Pos.X = newX
	ctx.Player.Pos.Y = newY

	if dice.Percent(ctx.Dice) <= domain.EncounterChancePercent {
		return handlers.Result{
			Msg:       "Из зарослей выскакивает противник!",
			MsgType:   "COMBAT",
			Encounter: true,
		}, nil
	}

	return handlers.EmptyResult(), nil
}
