package domain

import "strings"

// ActionKind - тип боевого действия
type ActionKind uint8

const (
	KindUnknown ActionKind = iota
	KindHit
	KindHealing
	KindPoison
	KindProtection
)

// Маппинг для конвертации JSON -> Domain
var kindStringToKind = map[string]ActionKind{
	"HIT":        KindHit,
	"HEALING":    KindHealing,
	"POISON":     KindPoison,
	"PROTECTION": KindProtection,
}

// Маппинг для логов Domain -> String
var kindToString = map[ActionKind]string{
	KindHit:        "HIT",
	KindHealing:    "HEALING",
	KindPoison:     "POISON",
	KindProtection: "PROTECTION",
}

// ParseActionKind конвертирует строку из JSON в ActionKind
func ParseActionKind(s string) ActionKind {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := kindStringToKind[upper]; ok {
		return val
	}
	return KindUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k ActionKind) String() string {
	if val, ok := kindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// BattleAction - одно боевое намерение: удар, лечение, яд или защита.
// Неизменяемое значение; Duration имеет смысл только для яда (сколько ходов
// травить) и защиты (сколько ходов действует), для остальных игнорируется.
type BattleAction struct {
	Name      string     `json:"name"`
	Kind      ActionKind `json:"kind"`
	Magnitude int        `json:"magnitude"`
	Duration  int        `json:"duration,omitempty"`
}
