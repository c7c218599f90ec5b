package domain

import "time"

// Receipt records one installed package.
type Receipt struct {
	Identity    Identity  `json:"identity"`
	RunID       string    `json:"run_id,omitzero"`
	Source      string    `json:"source,omitzero"`
	InstalledAt time.Time `json:"installed_at,omitzero"`
}
