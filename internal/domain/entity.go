package domain

// --- КОМПОНЕНТЫ ---

// RenderComponent - Визуализация (Клиент)
type RenderComponent struct {
	Symbol string `json:"symbol"` // Символ отображения (@-герой, s-слизень)
	Color  string `json:"color"`
	Label  string `json:"label"` // Метка для интерфейса
}

// ProgressComponent - Прогресс героя между боями
type ProgressComponent struct {
	Experience int `json:"experience"`
	BattlesWon int `json:"battlesWon"`
}

// --- СУЩНОСТЬ ---

// Entity - герой или противник. Компоненты-указатели: nil означает,
// что свойство у сущности отсутствует.
type Entity struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`

	// ControllerID - ID сессии, которая управляет этой сущностью.
	// Если пусто - сущностью управляет сервер (или никто).
	ControllerID string `json:"controllerId,omitempty"`

	Pos Position `json:"pos"`

	Render   *RenderComponent   `json:"render,omitempty"`
	Stats    *CombatStats       `json:"stats,omitempty"`
	Progress *ProgressComponent `json:"progress,omitempty"`
}
