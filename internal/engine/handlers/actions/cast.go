package actions

import (
	"arcana-server/internal/battle"
	"arcana-server/internal/engine/handlers"
	"arcana-server/pkg/api"
)

// HandleCast выбирает заклинание из каталога героя и разыгрывает ход.
func HandleCast(ctx handlers.Context, p api.SpellPayload) (handlers.Result, error) {
	if ctx.Battle == nil {
		return handlers.Result{Msg: "Вы не в бою.", MsgType: "ERROR"}, nil
	}

	action, ok := battle.FindPlayerAction(ctx.Player.Stats, p.Name)
	if !ok {
		return handlers.Result{Msg: "Неизвестное заклинание: " + p.Name, MsgType: "ERROR"}, nil
	}

	report, err := ctx.Battle.ResolveTurn(action)
	if err != nil {
		return rejectBattleError(err)
	}

	return handlers.BattleResult(report), nil
}
