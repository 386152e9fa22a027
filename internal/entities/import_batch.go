package entities

import "time"

type ImportStatus string

const (
	ImportStatusPending   ImportStatus = "pending"
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// ImportBatch records one committed spreadsheet import.
type ImportBatch struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	ImportTag  string       `gorm:"index;size:256" json:"import_tag"`
	SourceFile string       `gorm:"size:512" json:"source_file"`
	Policy     string       `gorm:"size:20" json:"policy"`
	Status     ImportStatus `gorm:"size:20;default:'pending'" json:"status"`

	TotalRows  int `json:"total_rows"`
	Rejected   int `json:"rejected"`
	Created    int `json:"created"`
	Updated    int `json:"updated"`
	Skipped    int `json:"skipped"`
	DroppedRaw int `json:"dropped_rows"` // malformed rows dropped by the parser

	TaskID    string     `gorm:"size:64" json:"task_id,omitempty"`
	Errors    string     `gorm:"type:text" json:"errors,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

func (ImportBatch) TableName() string {
	return "import_batches"
}
