package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Trigger types recorded on optimization runs.
const (
	TriggerMachineOptimization = "machine_generated_optimization"
	TriggerManualUpdate        = "manual_update_optimization"
)

// OptimizationRun is a stored optimization result document, either produced by
// the backend optimizer or saved from a manual scheduler override.
type OptimizationRun struct {
	ID          uuid.UUID
	TriggerType string
	Document    json.RawMessage
	CreatedAt   time.Time
}
