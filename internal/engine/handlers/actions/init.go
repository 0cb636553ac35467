package actions

import (
	"errors"

	"arcana-server/internal/battle"
	"arcana-server/internal/engine/handlers"
)

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Добро пожаловать в Арканум.",
		MsgType: "INFO",
	}, nil
}

// rejectBattleError конвертирует отказы боевого резолвера в клиентские
// ошибки: состояние боя не изменено, ход не потрачен.
func rejectBattleError(err error) (handlers.Result, error) {
	switch {
	case errors.Is(err, battle.ErrNoPotionsLeft):
		return handlers.Result{Msg: "Зелья закончились!", MsgType: "ERROR"}, nil
	case errors.Is(err, battle.ErrBattleOver):
		return handlers.Result{Msg: "Бой уже завершен.", MsgType: "ERROR"}, nil
	case errors.Is(err, battle.ErrUnknownAction):
		return handlers.Result{Msg: "Неизвестное действие.", MsgType: "ERROR"}, nil
	default:
		return handlers.Result{}, err
	}
}
