package actions

import (
	"arcana-server/internal/engine/handlers"
)

// HandleFlee - попытка сбежать из боя.
func HandleFlee(ctx handlers.Context) (handlers.Result, error) {
	if ctx.Battle == nil {
		return handlers.Result{Msg: "Вы не в бою.", MsgType: "ERROR"}, nil
	}

	report, err := ctx.Battle.AttemptFlee()
	if err != nil {
		return rejectBattleError(err)
	}

	return handlers.BattleResult(report), nil
}
