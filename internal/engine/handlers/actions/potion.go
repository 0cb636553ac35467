package actions

import (
	"arcana-server/internal/battle"
	"arcana-server/internal/engine/handlers"
)

// HandlePotion - отдельная команда для зелья: клиенту не нужно знать
// каталог, чтобы лечиться.
func HandlePotion(ctx handlers.Context) (handlers.Result, error) {
	if ctx.Battle == nil {
		return handlers.Result{Msg: "Вы не в бою.", MsgType: "ERROR"}, nil
	}

	action, _ := battle.FindPlayerAction(ctx.Player.Stats, battle.SpellHealingPotion)

	report, err := ctx.Battle.ResolveTurn(action)
	if err != nil {
		return rejectBattleError(err)
	}

	return handlers.BattleResult(report), nil
}
