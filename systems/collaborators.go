package systems

import (
	"log"
	"math"

	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
)

// GameManager is the surrounding game-state machine: economy plus the
// interstitials between rounds.
type GameManager interface {
	AddGold(amount int)
	AddExperience(amount int)
	RoundComplete(round int)
	GameWon()
	GameOver()
}

// LootSpawner drops pickups where an agent died.
type LootSpawner interface {
	SpawnLoot(pos gamemath.Vec2)
}

// LootFunc adapts a plain function to LootSpawner.
type LootFunc func(pos gamemath.Vec2)

func (f LootFunc) SpawnLoot(pos gamemath.Vec2) { f(pos) }

type nopLoot struct{}

func (nopLoot) SpawnLoot(gamemath.Vec2) {}

// Ledger is an in-memory GameManager tracking gold, experience and levels.
type Ledger struct {
	Gold       int
	Experience int
	Level      int
	Rounds     int
	Won        bool
	Lost       bool
}

func NewLedger() *Ledger {
	return &Ledger{Level: 1}
}

func (l *Ledger) AddGold(amount int) {
	l.Gold += amount
}

// AddExperience adds XP and levels up while the total covers the next
// threshold. Each level needs cfg.Economy.LevelScaling times the previous one.
func (l *Ledger) AddExperience(amount int) {
	l.Experience += amount
	for l.Experience >= l.NextLevelAt() {
		l.Experience -= l.NextLevelAt()
		l.Level++
		log.Printf("[Economy] Level up: %d", l.Level)
	}
}

// NextLevelAt returns the experience needed to leave the current level.
func (l *Ledger) NextLevelAt() int {
	level := max(l.Level, 1)
	return int(float64(cfg.Economy.ExperienceToLevel) * math.Pow(cfg.Economy.LevelScaling, float64(level-1)))
}

func (l *Ledger) RoundComplete(round int) {
	l.Rounds = round
}

func (l *Ledger) GameWon()  { l.Won = true }
func (l *Ledger) GameOver() { l.Lost = true }
