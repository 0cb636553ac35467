package domain

import "encoding/json"

// ReplayAction - это запись одного действия извне (от игрока)
type ReplayAction struct {
	Tick    int             `json:"tick"`
	Action  ActionType      `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - полная запись партии.
// Сид + лента действий полностью определяют итоговое состояние мира:
// вся случайность идет из одного генератора, посеянного этим сидом.
type ReplaySession struct {
	Seed      int64          `json:"seed"`
	Timestamp int64          `json:"timestamp"`
	Actions   []ReplayAction `json:"actions"`
}
