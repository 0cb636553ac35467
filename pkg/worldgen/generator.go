package worldgen

import (
	"math/rand"

	"arcana-server/internal/domain"
)

// Константы генерации
const (
	MapWidth  = 40
	MapHeight = 25

	// Плотность скал: один бросок на клетку.
	RockChance = 0.08

	// Поляна вокруг точки старта остается чистой.
	ClearRadius = 3
)

// Generate создает открытое поле: трава, граница из скал по периметру
// и редкая россыпь скал внутри. Точка старта - центр карты, вокруг нее
// гарантированно чисто.
//
// Генератор принимает rng явно: при фиксированном сиде мир воспроизводим.
func Generate(rng *rand.Rand) *domain.WorldMap {
	gameMap := make([][]domain.Tile, MapHeight)
	for y := 0; y < MapHeight; y++ {
		row := make([]domain.Tile, MapWidth)
		for x := 0; x < MapWidth; x++ {
			row[x] = domain.Tile{X: x, Y: y, IsWall: false, Env: "grass"}
		}
		gameMap[y] = row
	}

	// 1. Граница из скал по периметру
	for x := 0; x < MapWidth; x++ {
		setRock(gameMap, x, 0)
		setRock(gameMap, x, MapHeight-1)
	}
	for y := 0; y < MapHeight; y++ {
		setRock(gameMap, 0, y)
		setRock(gameMap, MapWidth-1, y)
	}

	startPos := domain.Position{X: MapWidth / 2, Y: MapHeight / 2}

	// 2. Россыпь скал внутри поля
	for y := 1; y < MapHeight-1; y++ {
		for x := 1; x < MapWidth-1; x++ {
			if nearStart(x, y, startPos) {
				continue
			}
			if rng.Float64() < RockChance {
				setRock(gameMap, x, y)
			}
		}
	}

	return &domain.WorldMap{
		Map:        gameMap,
		Width:      MapWidth,
		Height:     MapHeight,
		GlobalTick: 0,
		StartPos:   startPos,
	}
}

func setRock(gameMap [][]domain.Tile, x, y int) {
	gameMap[y][x].IsWall = true
	gameMap[y][x].Env = "rock"
}

func nearStart(x, y int, start domain.Position) bool {
	dx := x - start.X
	if dx < 0 {
		dx = -dx
	}
	dy := y - start.Y
	if dy < 0 {
		dy = -dy
	}
	return dx <= ClearRadius && dy <= ClearRadius
}
