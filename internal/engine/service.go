package engine

import (
	"fmt"
	"math/rand"
	"time"

	"arcana-server/internal/battle"
	"arcana-server/internal/domain"
	"arcana-server/internal/enemy"
	"arcana-server/internal/engine/handlers"
	"arcana-server/internal/engine/handlers/actions"
	"arcana-server/internal/network"
	"arcana-server/pkg/api"
	"arcana-server/pkg/dice"
	"arcana-server/pkg/logger"
	"arcana-server/pkg/worldgen"

	"github.com/sirupsen/logrus"
)

// GameService - контроллер мира и стычек. Владеет героем, картой,
// текущим боем (один одновременно) и источником случайности сессии.
// Все мутации состояния происходят в одной горутине Run().
type GameService struct {
	World  *domain.WorldMap
	Player *domain.Entity

	// Battle - текущий бой. nil в режиме исследования.
	Battle *battle.Battle

	Logs []api.LogEntry

	CommandChan chan domain.InternalCommand

	// DisconnectChan получает ID сессии при разрыве соединения.
	DisconnectChan chan string

	// InspectChan получает читающие замыкания от внешних горутин
	// (debug-ручки): они выполняются внутри Run(), где чтение
	// состояния безопасно относительно мутаций.
	InspectChan chan func()

	Hub *network.Broadcaster

	cfg      Config
	rng      dice.Source
	handlers map[domain.ActionType]handlers.HandlerFunc

	// replay - протокол сессии для записи в .abrp.
	replay *domain.ReplaySession

	quit chan struct{}
}

func NewService(cfg Config) *GameService {
	// Один rand.Rand на сессию: карта, противники и все боевые броски
	// тянутся из него по порядку, фиксированный сид воспроизводит сессию.
	rng := rand.New(rand.NewSource(cfg.Seed))

	world := worldgen.Generate(rng)

	player := &domain.Entity{
		ID:   "hero_1", // Известный ID для удобства отладки
		Name: "Герой",
		Type: domain.EntityTypePlayer,
		Pos:  world.StartPos,

		Render: &domain.RenderComponent{Symbol: "@", Color: "#22D3EE", Label: "A"},
		Stats: &domain.CombatStats{
			Health:    domain.PlayerMaxHealth,
			MaxHealth: domain.PlayerMaxHealth,

			AttackDamage:           domain.PlayerAttackDamage,
			HealingPotions:         domain.PlayerHealingPotions,
			OriginalHealingPotions: domain.PlayerHealingPotions,
			HealingPotionHealth:    domain.PlayerHealingPotionHealth,
			PoisonTurns:            domain.PlayerPoisonTurns,

			CriticalChance: domain.PlayerCriticalChance,
			DodgeChance:    domain.PlayerDodgeChance,
		},
		Progress: &domain.ProgressComponent{},
	}

	s := &GameService{
		World:          world,
		Player:         player,
		Logs:           []api.LogEntry{},
		CommandChan:    make(chan domain.InternalCommand, 100),
		DisconnectChan: make(chan string, 8),
		InspectChan:    make(chan func()),
		Hub:            network.NewBroadcaster(),
		cfg:            cfg,
		rng:            rng,
		handlers:       make(map[domain.ActionType]handlers.HandlerFunc),
		replay: &domain.ReplaySession{
			Seed:      cfg.Seed,
			Timestamp: time.Now().Unix(),
		},
		quit: make(chan struct{}),
	}

	s.registerHandlers()
	return s
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionCast] = handlers.WithPayload(actions.HandleCast)
	s.handlers[domain.ActionPotion] = handlers.WithEmptyPayload(actions.HandlePotion)
	s.handlers[domain.ActionFlee] = handlers.WithEmptyPayload(actions.HandleFlee)
}

func (s *GameService) Start() {
	go s.Run()
}

// Stop останавливает игровой цикл.
func (s *GameService) Stop() {
	close(s.quit)
}

// Replay - записанный протокол сессии (для сохранения на выходе).
func (s *GameService) Replay() *domain.ReplaySession {
	return s.replay
}

// Inspect выполняет fn в игровой горутине и дожидается завершения.
// Единственный безопасный способ читать состояние снаружи Run().
func (s *GameService) Inspect(fn func()) {
	done := make(chan struct{})
	s.InspectChan <- func() {
		defer close(done)
		fn()
	}
	<-done
}

// Playback синхронно прогоняет записанную сессию через движок.
// Сервис должен быть создан с сидом этой сессии, иначе броски разойдутся.
func (s *GameService) Playback(session *domain.ReplaySession) {
	logger.Log.WithFields(logrus.Fields{
		"seed":    session.Seed,
		"actions": len(session.Actions),
	}).Info("Replay playback started")

	for _, act := range session.Actions {
		// Догоняем мировое время до тика записи: пассивный реген
		// между действиями воспроизводится так же, как в живой сессии.
		for s.World.GlobalTick < act.Tick {
			s.worldTick()
		}

		s.executeCommand(domain.InternalCommand{
			Action:  act.Action,
			Payload: act.Payload,
		})
	}

	logger.Log.WithFields(logrus.Fields{
		"pos_x":      s.Player.Pos.X,
		"pos_y":      s.Player.Pos.Y,
		"health":     s.Player.Stats.Health,
		"experience": s.Player.Progress.Experience,
		"in_battle":  s.Battle != nil,
	}).Info("Replay playback finished")
}

// ProcessCommand принимает команду от внешнего мира (WebSocket)
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		logger.Log.WithField("action", externalCmd.Action).Warn("Unknown client action")
		return
	}

	s.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}
}

// --- GAME LOOP ---

// Run - единственная горутина, которой разрешено менять состояние мира.
func (s *GameService) Run() {
	logger.Log.WithField("seed", s.cfg.Seed).Info("Game loop started")

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case cmd := <-s.CommandChan:
			s.executeCommand(cmd)
			s.publishUpdate()

		case <-ticker.C:
			s.worldTick()
			s.publishUpdate()

		case inspect := <-s.InspectChan:
			inspect()

		case sessionID := <-s.DisconnectChan:
			if s.Player.ControllerID == sessionID {
				s.Player.ControllerID = ""
				logger.Log.WithField("session", sessionID).Info("Player session released")
			}

		case <-s.quit:
			logger.Log.Info("Game loop stopped")
			return
		}
	}
}

// executeCommand выполняет хендлер и разбирает его результат:
// логи, запись протокола, создание и завершение боя.
func (s *GameService) executeCommand(cmd domain.InternalCommand) {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return
	}

	// INIT закрепляет сессию за героем.
	if cmd.Action == domain.ActionInit && cmd.Token != "" {
		s.Player.ControllerID = cmd.Token
	}

	ctx := handlers.Context{
		World:  s.World,
		Player: s.Player,
		Battle: s.Battle,
		Dice:   s.rng,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"action": cmd.Action.String(),
			"error":  err,
		}).Warn("Command rejected")
		s.AddLog("Команда отклонена: "+err.Error(), "ERROR")
		return
	}

	// INIT не игровое действие, в протокол не пишется.
	if cmd.Action != domain.ActionInit {
		s.replay.Actions = append(s.replay.Actions, domain.ReplayAction{
			Tick:    s.World.GlobalTick,
			Action:  cmd.Action,
			Payload: cmd.Payload,
		})
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		s.AddLog(result.Msg, msgType)
	}
	for _, m := range result.Messages {
		s.AddLog(m, "COMBAT")
	}

	if result.Encounter {
		s.startEncounter()
	}
	if result.Outcome != nil {
		s.finishBattle(result.Outcome)
	}
}

// startEncounter создает противника под текущий опыт героя и открывает бой.
func (s *GameService) startEncounter() {
	exp := s.Player.Progress.Experience
	foe := enemy.NewRandomEncounter(exp, s.rng)
	s.Battle = battle.New(s.Player, foe, s.rng)

	logger.Log.WithFields(logrus.Fields{
		"player_exp":   exp,
		"enemy":        foe.Name(),
		"enemy_health": foe.Stats().MaxHealth,
	}).Info("Encounter started")
}

// finishBattle разбирает итог боя и возвращает героя в режим исследования.
// Противник при этом уничтожается вместе с инстансом боя.
func (s *GameService) finishBattle(outcome *battle.Outcome) {
	switch outcome.Result {
	case battle.OutcomeEnemyDefeated:
		s.Player.Progress.Experience += outcome.ExperienceGained
		s.Player.Progress.BattlesWon++

		logger.Log.WithFields(logrus.Fields{
			"exp_gained": outcome.ExperienceGained,
			"exp_total":  s.Player.Progress.Experience,
		}).Info("Battle won")

	case battle.OutcomePlayerDefeated:
		s.respawn()

	case battle.OutcomeFled:
		// Побег: противник исчезает, прогресс не меняется.
	}

	s.Battle = nil
}

// respawn возвращает героя на стартовую клетку с полным здоровьем
// и запасом зелий. Опыт сохраняется: смерть не откатывает прогресс.
func (s *GameService) respawn() {
	s.Player.Pos = s.World.StartPos

	st := s.Player.Stats
	st.Health = st.MaxHealth
	st.HealingPotions = st.OriginalHealingPotions
	st.IsDead = false
	st.PoisonTurnsRemaining = 0
	st.PoisonDamagePerTurn = 0
	st.ProtectionTurnsRemaining = 0

	s.AddLog("Вы приходите в себя у лагеря.", "INFO")
	logger.Log.Info("Player respawned at start position")
}

// worldTick - пассивное время мира: вне боя герой понемногу
// восстанавливает здоровье.
func (s *GameService) worldTick() {
	s.World.GlobalTick++

	if s.Battle == nil && !s.Player.Stats.IsDead {
		s.Player.Stats.Heal(domain.ExploreRegenPerTick)
	}
}

// publishUpdate рассылает состояние всем подключенным клиентам
func (s *GameService) publishUpdate() {
	state := s.BuildState()
	s.Hub.Broadcast(*state)

	// Очищаем логи ПОСЛЕ рассылки
	s.Logs = []api.LogEntry{}
}

func (s *GameService) AddLog(text, logType string) {
	s.Logs = append(s.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
}
