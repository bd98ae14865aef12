package config

import (
	"fmt"
	"log"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// SpawnEnv is the environment archetype spawn conditions are evaluated
// against, e.g. `Wave >= 3 && Alive < 20`.
type SpawnEnv struct {
	Wave    int     // 1-indexed wave number
	Elapsed float64 // seconds since the wave started
	Alive   int     // live agents in the world
	Spawned int     // agents spawned so far this wave
}

// CompileCondition compiles a boolean spawn condition.
func CompileCondition(src string) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.Env(SpawnEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile condition %q: %w", src, err)
	}
	return program, nil
}

func (a *ArchetypeWeight) compile() error {
	if a.When == "" || a.program != nil {
		return nil
	}
	program, err := CompileCondition(a.When)
	if err != nil {
		return err
	}
	a.program = program
	return nil
}

// Eligible reports whether the entry may be picked. Entries without a
// condition are always eligible; a condition that fails to compile or run
// makes the entry ineligible.
func (a *ArchetypeWeight) Eligible(env SpawnEnv) bool {
	if a.When == "" {
		return true
	}
	if err := a.compile(); err != nil {
		log.Printf("[Spawn] %v", err)
		return false
	}
	result, err := vm.Run(a.program, env)
	if err != nil {
		log.Printf("[Spawn] condition %q: %v", a.When, err)
		return false
	}
	ok, _ := result.(bool)
	return ok
}
