// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// PRNGService - обертка над стандартным генератором случайных чисел Go,
// которая позволяет использовать предсказуемый (seeded) рандом в автоигре
// и пакетных прогонах.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService создает новый экземпляр сервиса с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{rng: rand.New(rand.NewSource(seed))}
}

// Intn возвращает случайное целое число в диапазоне [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Range возвращает случайное число в [min, max).
func (s *PRNGService) Range(min, max float64) float64 {
	return min + (max-min)*s.rng.Float64()
}

// WeightedEntry - вариант для взвешенного выбора.
type WeightedEntry struct {
	Key    string
	Weight int
}

// ChooseWeighted выполняет взвешенный случайный выбор.
// Суммирует веса, выбирает случайное число в этом диапазоне
// и находит элемент, которому оно соответствует.
func (s *PRNGService) ChooseWeighted(entries []WeightedEntry) string {
	if len(entries) == 0 {
		return ""
	}

	totalWeight := 0
	for _, entry := range entries {
		if entry.Weight > 0 {
			totalWeight += entry.Weight
		}
	}
	if totalWeight <= 0 {
		return entries[0].Key
	}

	r := s.Intn(totalWeight)
	upto := 0
	for _, entry := range entries {
		if entry.Weight <= 0 {
			continue
		}
		if upto+entry.Weight > r {
			return entry.Key
		}
		upto += entry.Weight
	}
	return entries[len(entries)-1].Key
}
