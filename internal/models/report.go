package models

// ReportDocument is the format-neutral view both exporters consume. It is a
// read-only composition: nothing in here refers back to live storage.
type ReportDocument struct {
	Profile    *ProfileSnapshot `json:"profile"`
	Plan       *PlanSnapshot    `json:"plan"`
	Checklist  []string         `json:"checklist"`
	QuickNotes []string         `json:"quick_notes"`
	Workouts   []SessionDetail  `json:"workouts"`
}
