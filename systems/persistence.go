package systems

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata"

	cfg "github.com/automoto/holdout/config"
)

// PlanStore keeps wave plans in the per-user application data directory.
type PlanStore struct {
	manager *gdata.Manager
}

// OpenPlanStore opens the data directory of appName, creating it if needed.
func OpenPlanStore(appName string) (*PlanStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open plan store: %w", err)
	}
	return &PlanStore{manager: m}, nil
}

func planKey(name string) string {
	return "plan_" + name
}

// Save stores plan under name as YAML.
func (ps *PlanStore) Save(name string, plan *cfg.WavePlan) error {
	data, err := cfg.MarshalWavePlan(plan)
	if err != nil {
		return err
	}
	if err := ps.manager.SaveItem(planKey(name), data); err != nil {
		return fmt.Errorf("save plan %q: %w", name, err)
	}
	log.Printf("[Persistence] Saved plan %q (%d waves)", name, len(plan.Waves))
	return nil
}

// Load returns the plan stored under name, or nil when nothing is stored.
func (ps *PlanStore) Load(name string) (*cfg.WavePlan, error) {
	data, err := ps.manager.LoadItem(planKey(name))
	if err != nil {
		return nil, fmt.Errorf("load plan %q: %w", name, err)
	}
	if len(data) == 0 {
		// Nothing saved yet
		return nil, nil
	}
	plan, err := cfg.ParseWavePlan(data)
	if err != nil {
		return nil, fmt.Errorf("stored plan %q: %w", name, err)
	}
	return plan, nil
}

// Delete forgets the plan stored under name.
func (ps *PlanStore) Delete(name string) error {
	if err := ps.manager.SaveItem(planKey(name), nil); err != nil {
		return fmt.Errorf("delete plan %q: %w", name, err)
	}
	return nil
}
