package server

import (
	"encoding/json"
	"net/http"

	"arcana-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка.
// Состояние мутирует только игровая горутина, поэтому каждый дамп
// сериализуется внутри нее (через Inspect), а не из HTTP-горутины.
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/player", h.handleDumpPlayer)
	mux.HandleFunc("/debug/battle", h.handleDumpBattle)
	mux.HandleFunc("/debug/replay", h.handleDumpReplay)
}

// /debug/player - полный дамп героя, включая скрытые характеристики
func (h *DebugHandler) handleDumpPlayer(w http.ResponseWriter, r *http.Request) {
	var data []byte
	var err error
	h.Service.Inspect(func() {
		data, err = json.Marshal(h.Service.Player)
	})
	writeJSON(w, data, err)
}

// /debug/battle - состояние текущего боя (включая статы противника)
func (h *DebugHandler) handleDumpBattle(w http.ResponseWriter, r *http.Request) {
	type battleDump struct {
		Turn       int         `json:"turn"`
		State      string      `json:"state"`
		EnemyName  string      `json:"enemy_name"`
		EnemyStats interface{} `json:"enemy_stats"`
	}

	var data []byte
	var err error
	h.Service.Inspect(func() {
		b := h.Service.Battle
		if b == nil {
			return
		}
		data, err = json.Marshal(battleDump{
			Turn:       b.Turn(),
			State:      b.State().String(),
			EnemyName:  b.Foe.Name(),
			EnemyStats: b.Foe.Stats(),
		})
	})

	if data == nil && err == nil {
		http.Error(w, "No active battle", http.StatusNotFound)
		return
	}
	writeJSON(w, data, err)
}

// /debug/replay - записанный протокол текущей сессии
func (h *DebugHandler) handleDumpReplay(w http.ResponseWriter, r *http.Request) {
	var data []byte
	var err error
	h.Service.Inspect(func() {
		data, err = json.Marshal(h.Service.Replay())
	})
	writeJSON(w, data, err)
}

// writeJSON отдает уже сериализованный снимок состояния.
func writeJSON(w http.ResponseWriter, data []byte, err error) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		w.Write([]byte("[]"))
		return
	}
	w.Write(data)
}
