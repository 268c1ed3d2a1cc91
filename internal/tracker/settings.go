package tracker

import (
	"context"
	"fmt"
)

func (mt *MoneyTracker) GetSettings(ctx context.Context) (Settings, error) {
	settings, err := mt.storage.GetOrCreateSettings(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings overwrites the settings row. Whatever ID the caller sent, row 1 is written.
func (mt *MoneyTracker) UpdateSettings(ctx context.Context, settings Settings) (Settings, error) {
	settings.ID = SettingsID
	saved, err := mt.storage.SaveSettings(ctx, settings)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}
	return saved, nil
}
