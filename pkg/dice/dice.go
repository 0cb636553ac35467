package dice

// Source - источник случайности для всех игровых бросков.
// *rand.Rand реализует его без оберток, в тестах подставляется
// скриптованная заглушка с заранее известными значениями.
type Source interface {
	// Intn возвращает целое в [0, n). Паникует при n <= 0 (как math/rand).
	Intn(n int) int
	// Float64 возвращает число в [0.0, 1.0).
	Float64() float64
}

// Percent бросает d100 и возвращает результат в [1, 100].
func Percent(src Source) int {
	return src.Intn(100) + 1
}

// Chance проверяет вероятностное событие.
// Вероятности вне [0,1] обрезаются: отрицательная никогда не срабатывает,
// больше единицы - срабатывает всегда (без обращения к источнику).
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}
