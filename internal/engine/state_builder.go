package engine

import (
	"arcana-server/internal/battle"
	"arcana-server/internal/domain"
	"arcana-server/pkg/api"
)

// BuildState создает полный слепок мира для клиента.
// Карта маленькая и одна на сессию: шлем ее целиком, без тумана войны.
func (s *GameService) BuildState() *api.ServerResponse {
	mode := api.ModeExploring
	if s.Battle != nil {
		mode = api.ModeBattle
	}

	mapDTO := make([]api.TileView, 0, s.World.Width*s.World.Height)
	for y := 0; y < s.World.Height; y++ {
		for x := 0; x < s.World.Width; x++ {
			tile := s.World.Map[y][x]

			tView := api.TileView{
				X: x, Y: y, IsWall: tile.IsWall,
				Symbol: ".", Color: "#3f6212",
			}
			if tile.IsWall {
				tView.Symbol = "#"
				tView.Color = "#666666"
			}
			mapDTO = append(mapDTO, tView)
		}
	}

	playerView := s.toPlayerView()

	// Копия логов, чтобы не было гонки данных
	logsCopy := make([]api.LogEntry, len(s.Logs))
	copy(logsCopy, s.Logs)

	resp := &api.ServerResponse{
		Type:       "UPDATE",
		Tick:       s.World.GlobalTick,
		Mode:       mode,
		MyEntityID: s.Player.ID,
		Grid:       &api.GridMeta{Width: s.World.Width, Height: s.World.Height},
		Map:        mapDTO,
		Player:     &playerView,
		Logs:       logsCopy,
	}

	if s.Battle != nil {
		resp.Battle = s.toBattleView()
	}

	return resp
}

// toPlayerView - владелец видит свои характеристики полностью.
func (s *GameService) toPlayerView() api.EntityView {
	p := s.Player

	view := api.EntityView{
		ID:         p.ID,
		Type:       p.Type,
		Name:       p.Name,
		Experience: p.Progress.Experience,
	}
	view.Pos.X = p.Pos.X
	view.Pos.Y = p.Pos.Y

	if p.Render != nil {
		view.Render.Symbol = p.Render.Symbol
		view.Render.Color = p.Render.Color
	}

	st := p.Stats
	view.Stats = &api.StatsView{
		Health:          st.Health,
		MaxHealth:       st.MaxHealth,
		AttackDamage:    st.AttackDamage,
		HealingPotions:  st.HealingPotions,
		PoisonTurns:     st.PoisonTurnsRemaining,
		ProtectionTurns: st.ProtectionTurnsRemaining,
		IsDead:          st.IsDead,
	}

	return view
}

// toBattleView собирает состояние боя: противника (чужие статы
// урезаны до здоровья и статусов) и каталог доступных действий.
func (s *GameService) toBattleView() *api.BattleView {
	foe := s.Battle.Foe
	foeStats := foe.Stats()

	enemyView := api.EntityView{
		ID:   "encounter",
		Type: domain.EntityTypeEnemy,
		Name: foe.Name(),
	}
	enemyView.Render.Symbol = "W"
	enemyView.Render.Color = "#DC2626"
	enemyView.Stats = &api.StatsView{
		Health:          foeStats.Health,
		MaxHealth:       foeStats.MaxHealth,
		PoisonTurns:     foeStats.PoisonTurnsRemaining,
		ProtectionTurns: foeStats.ProtectionTurnsRemaining,
		IsDead:          foeStats.IsDead,
	}

	playerStats := s.Player.Stats
	catalog := battle.PlayerActions(playerStats)
	actionViews := make([]api.ActionView, 0, len(catalog))
	for _, a := range catalog {
		available := true
		if a.Name == battle.SpellHealingPotion {
			available = playerStats.HealingPotions > 0
		}
		actionViews = append(actionViews, api.ActionView{
			Name:      a.Name,
			Kind:      a.Kind.String(),
			Magnitude: a.Magnitude,
			Duration:  a.Duration,
			Available: available,
		})
	}

	return &api.BattleView{
		Turn:    s.Battle.Turn(),
		State:   s.Battle.State().String(),
		Enemy:   enemyView,
		Actions: actionViews,
	}
}
