package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
)

// behavior is the capability set of a behavior override. Nil hooks are
// skipped.
type behavior struct {
	// onTargetUpdated runs after every targeting cycle.
	onTargetUpdated func(s *Sim, e *donburi.Entry)
	// onPreTargeting runs before selection and may force a target for the cycle.
	onPreTargeting func(s *Sim, e *donburi.Entry)
	// onTick runs every tick.
	onTick func(s *Sim, e *donburi.Entry)
	// detach releases timers and movement when the agent dies.
	detach func(s *Sim, e *donburi.Entry)
}

var behaviors map[cfg.BehaviorKind]behavior

// Filled in init: hooks call applyTarget, which reads the table.
func init() {
	behaviors = map[cfg.BehaviorKind]behavior{
		cfg.BehaviorCharger: {
			onTargetUpdated: chargerTargetUpdated,
			onTick:          chargerTick,
			detach:          chargerDetach,
		},
		cfg.BehaviorLeaper: {
			onTick: leaperTick,
			detach: leaperDetach,
		},
		cfg.BehaviorSneaker: {
			onPreTargeting: sneakerPreTargeting,
			detach:         sneakerDetach,
		},
		cfg.BehaviorSpitter: {
			onTick: spitterTick,
			detach: spitterDetach,
		},
	}
}

// behaviorOf returns the behavior of a live agent.
func behaviorOf(e *donburi.Entry) (behavior, bool) {
	if !e.HasComponent(components.Agent) {
		return behavior{}, false
	}
	agent := components.Agent.Get(e)
	if !agent.Alive() {
		return behavior{}, false
	}
	b, ok := behaviors[agent.Behavior]
	return b, ok
}

// UpdateBehaviors runs the per-tick hook of every live agent's behavior.
func UpdateBehaviors(s *Sim) {
	for _, e := range s.LiveAgents() {
		if b, ok := behaviorOf(e); ok && b.onTick != nil {
			b.onTick(s, e)
		}
	}
}

// detachBehavior runs when an agent dies. It is safe to call more than once.
func detachBehavior(s *Sim, e *donburi.Entry) {
	if !e.HasComponent(components.Agent) {
		return
	}
	b, ok := behaviors[components.Agent.Get(e).Behavior]
	if ok && b.detach != nil {
		b.detach(s, e)
	}
	*components.MovementOverride.Get(e) = components.MovementOverrideData{}
	components.TargetState.Get(e).Forced = components.Target{}
}
