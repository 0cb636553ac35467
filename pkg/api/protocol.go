package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Режимы, в которых может находиться игрок.
const (
	ModeExploring = "EXPLORING"
	ModeBattle    = "BATTLE"
)

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Полный "снимок" мира: карта, герой и (если идет бой) состояние боя.
// Отправляется после каждой обработанной команды и на мировом тике.
type ServerResponse struct {
	// Type тип сообщения. На данный момент всегда "UPDATE".
	Type string `json:"type"`

	// Tick текущее глобальное время мира.
	Tick int `json:"tick"`

	// Mode режим героя: EXPLORING или BATTLE.
	// Пока Mode == BATTLE, команды MOVE отклоняются.
	Mode string `json:"mode"`

	// MyEntityID ID сущности, которой управляет данный клиент.
	MyEntityID string `json:"myEntityId,omitempty"`

	// Grid метаданные о размере карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез всех тайлов карты.
	Map []TileView `json:"map,omitempty"`

	// Player состояние героя (статы видны владельцу полностью).
	Player *EntityView `json:"player,omitempty"`

	// Battle состояние текущего боя. nil вне боя.
	Battle *BattleView `json:"battle,omitempty"`

	// Logs срез новых сообщений с прошлого обновления.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит размеры карты для подготовки сетки рендеринга.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Symbol и Color - визуальное представление тайла (e.g. "#" для скалы).
	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	// IsWall true, если тайл непроходим.
	IsWall bool `json:"isWall"`
}

// EntityView это DTO для игровой сущности.
type EntityView struct {
	ID   string `json:"id"`
	Type string `json:"type"` // PLAYER, ENEMY
	Name string `json:"name"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
	} `json:"render"`

	// Stats боевые характеристики. Поле может отсутствовать (omitempty),
	// если клиент не имеет права видеть статы этой сущности.
	Stats *StatsView `json:"stats,omitempty"`

	// Experience накопленный опыт (только у героя).
	Experience int `json:"experience,omitempty"`
}

// StatsView это DTO боевых характеристик.
// Чужим сущностям сервер показывает только здоровье и статусы.
type StatsView struct {
	Health          int  `json:"health"`
	MaxHealth       int  `json:"maxHealth"`
	AttackDamage    int  `json:"attackDamage,omitempty"`
	HealingPotions  int  `json:"healingPotions,omitempty"`
	PoisonTurns     int  `json:"poisonTurns,omitempty"`     // оставшиеся ходы яда на сущности
	ProtectionTurns int  `json:"protectionTurns,omitempty"` // оставшиеся ходы защиты
	IsDead          bool `json:"isDead"`
}

// BattleView это DTO состояния боя.
type BattleView struct {
	Turn  int    `json:"turn"`
	State string `json:"state"` // AWAITING_INPUT, PLAYER_DEFEATED, ENEMY_DEFEATED, FLED

	// Enemy противник текущего боя.
	Enemy EntityView `json:"enemy"`

	// Actions доступные герою боевые действия на этот ход.
	Actions []ActionView `json:"actions"`
}

// ActionView описывает одно доступное боевое действие.
type ActionView struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"` // HIT, HEALING, POISON, PROTECTION
	Magnitude int    `json:"magnitude"`
	Duration  int    `json:"duration,omitempty"`

	// Available false, если действие сейчас недоступно
	// (например, зелье при нуле оставшихся).
	Available bool `json:"available"`
}

// LogEntry представляет одну запись в игровом логе (чате).
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сессии, от имени которой выполняется действие.
	Token string `json:"token,omitempty"`

	// Action название действия: INIT, MOVE, CAST, POTION, FLEE.
	Action string `json:"action"`

	// Payload JSON-объект с данными. Структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// DirectionPayload используется для перемещения по миру (MOVE).
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// SpellPayload используется для выбора боевого действия (CAST).
type SpellPayload struct {
	Name string `json:"name"` // Имя действия из BattleView.Actions
}
