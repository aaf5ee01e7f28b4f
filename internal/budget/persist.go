package budget

import (
	"context"
	"encoding/json"
	"fmt"

	"kuripot/internal/core"
	"kuripot/internal/kv"
)

func loadPeriods(ctx context.Context, s kv.Store, key string) ([]core.BudgetPeriod, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var periods []core.BudgetPeriod
	if err := json.Unmarshal(raw, &periods); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return periods, nil
}

func savePeriods(ctx context.Context, s kv.Store, key string, periods []core.BudgetPeriod) error {
	if periods == nil {
		periods = []core.BudgetPeriod{}
	}
	raw, err := json.Marshal(periods)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
