package domain

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Tile struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	IsWall bool   `json:"isWall"`
	Env    string `json:"env"` // grass, rock
}

// WorldMap - карта мира для режима исследования.
// Боевое состояние в ней не хранится: бой живет в своем инстансе.
type WorldMap struct {
	Map        [][]Tile `json:"map"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	GlobalTick int      `json:"globalTick"`

	// StartPos - точка появления (и возрождения) героя.
	StartPos Position `json:"startPos"`
}

// InBounds проверяет, что координаты лежат внутри карты.
func (w *WorldMap) InBounds(x, y int) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

// IsBlocked - можно ли встать на клетку.
func (w *WorldMap) IsBlocked(x, y int) bool {
	if !w.InBounds(x, y) {
		return true
	}
	return w.Map[y][x].IsWall
}
