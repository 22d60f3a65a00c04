// internal/defs/waves.go
package defs

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultSpawnDelay - пауза после спауна, если в клаузе нет delay.
const DefaultSpawnDelay = 0.5

// ErrMalformedClause - клауза волны не подходит ни под одно правило.
var ErrMalformedClause = errors.New("malformed wave clause")

// InstructionKind - как планировщику понимать WaveInstruction.
type InstructionKind int

const (
	InstructionSpawn InstructionKind = iota
	InstructionPause
	InstructionParallel
)

func (k InstructionKind) String() string {
	switch k {
	case InstructionSpawn:
		return "spawn"
	case InstructionPause:
		return "pause"
	case InstructionParallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// WaveInstruction - один шаг разобранной волны.
//   - spawn: Type - ключ типа фрукта, Delay - пауза до следующего шага
//   - pause: задан только Delay
//   - parallel: в Entries спауны всех групп подряд,
//     Delay - наибольшая задержка среди групп
type WaveInstruction struct {
	Kind    InstructionKind
	Type    string
	Delay   float64
	Entries []WaveInstruction
}

// WaveDefinition - строка волны из waves.json вместе с разбором.
type WaveDefinition struct {
	Source       string
	Instructions []WaveInstruction
}

// SpawnCount - сколько фруктов выпускает волна.
func (w WaveDefinition) SpawnCount() int {
	return CountSpawns(w.Instructions)
}

// CountSpawns считает спауны, заходя внутрь параллельных инструкций.
func CountSpawns(instructions []WaveInstruction) int {
	n := 0
	for _, ins := range instructions {
		switch ins.Kind {
		case InstructionSpawn:
			n++
		case InstructionParallel:
			n += CountSpawns(ins.Entries)
		}
	}
	return n
}

var (
	pausePattern = regexp.MustCompile(`(?i)^(?:pause|wait)\s*=\s*(\d*\.?\d+)$`)
	spawnPattern = regexp.MustCompile(`(?i)^(\d+)\s*x\s*([a-z_][a-z0-9_-]*)(?:\s*\|\s*delay\s*=\s*(\d*\.?\d+))?$`)
)

// ParseWave превращает строку волны, например
//
//	"12x cherry | delay=0.3, pause=2, 2xapple | delay=1 + 3xbanana | delay=0.5"
//
// в плоский список инструкций. Кривые клаузы в результат не попадают и
// собираются в возвращаемую ошибку; корректные клаузы возвращаются всегда.
func ParseWave(text string) ([]WaveInstruction, error) {
	var (
		out  []WaveInstruction
		errs []error
	)
	for _, raw := range strings.Split(text, ",") {
		clause := strings.TrimSpace(raw)
		if clause == "" {
			continue
		}
		ins, err := parseClause(clause)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, ins...)
	}
	return out, errors.Join(errs...)
}

func parseClause(clause string) ([]WaveInstruction, error) {
	if m := pausePattern.FindStringSubmatch(clause); m != nil {
		delay, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedClause, clause)
		}
		return []WaveInstruction{{Kind: InstructionPause, Delay: delay}}, nil
	}

	if strings.Contains(clause, "+") {
		var (
			entries  []WaveInstruction
			maxDelay float64
		)
		for _, g := range strings.Split(clause, "+") {
			group, delay, err := parseGroup(strings.TrimSpace(g))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrMalformedClause, clause)
			}
			entries = append(entries, group...)
			if delay > maxDelay {
				maxDelay = delay
			}
		}
		return []WaveInstruction{{Kind: InstructionParallel, Entries: entries, Delay: maxDelay}}, nil
	}

	entries, _, err := parseGroup(clause)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedClause, clause)
	}
	return entries, nil
}

// parseGroup разворачивает "NxTYPE | delay=D" в N спаунов.
func parseGroup(group string) ([]WaveInstruction, float64, error) {
	m := spawnPattern.FindStringSubmatch(group)
	if m == nil {
		return nil, 0, ErrMalformedClause
	}
	count, err := strconv.Atoi(m[1])
	if err != nil || count <= 0 {
		return nil, 0, ErrMalformedClause
	}
	delay := DefaultSpawnDelay
	if m[3] != "" {
		if delay, err = strconv.ParseFloat(m[3], 64); err != nil {
			return nil, 0, ErrMalformedClause
		}
	}
	typ := strings.ToLower(m[2])
	entries := make([]WaveInstruction, count)
	for i := range entries {
		entries[i] = WaveInstruction{Kind: InstructionSpawn, Type: typ, Delay: delay}
	}
	return entries, delay, nil
}
