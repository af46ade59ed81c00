package config

// SchedulerConfig defines configuration for periodic refresh runs
type SchedulerConfig struct {
	CycleMinutes int `json:"cycle_minutes,omitempty" yaml:"cycle_minutes,omitempty" validate:"omitempty,min=1"` // in minutes
}

// NewDefaultSchedulerConfig creates default scheduler configuration
func NewDefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		CycleMinutes: DefaultSchedulerRefreshIntervalMins,
	}
}
