package game

import (
	"math/rand/v2"
	"sync"
)

// RandomSource источник случайности движка. Внедряется явно, чтобы тесты могли его зафиксировать
type RandomSource interface {
	// Float64 равномерно в [0, 1)
	Float64() float64
	// IntN равномерно в [0, n)
	IntN(n int) int
}

type globalSource struct{}

// NewRandomSource источник поверх потокобезопасных функций math/rand/v2
func NewRandomSource() RandomSource {
	return globalSource{}
}

func (globalSource) Float64() float64 { return rand.Float64() }

func (globalSource) IntN(n int) int { return rand.IntN(n) }

type seededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededSource детерминированный источник для тестов и воспроизведения спинов
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *seededSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}
