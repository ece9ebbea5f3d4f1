package models

import "time"

// SourceFault records a failure while fetching or interpreting booking
// platform data. Fault rows are themselves mirrored to the ledger for triage.
type SourceFault struct {
	ID           uint   `gorm:"column:id;primaryKey"`
	Table        string `gorm:"column:table_name;size:64"`
	RecordID     string `gorm:"column:record_id;size:64"`
	Message      string `gorm:"column:message;size:1024"`
	Attempts     int    `gorm:"column:attempts"`
	CapturedDate string `gorm:"column:captured_date;size:10"`
	CapturedTime string `gorm:"column:captured_time;size:8"`
	SinkID       *int64 `gorm:"column:sink_id"`
	Synced       bool   `gorm:"column:synced"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SourceFault) TableName() string { return "source_faults" }

func (f *SourceFault) Kind() Kind          { return KindSourceFault }
func (f *SourceFault) LocalID() uint       { return f.ID }
func (f *SourceFault) ExternalKey() string { return f.Table + "/" + f.RecordID }
func (f *SourceFault) SinkRef() *int64     { return f.SinkID }
func (f *SourceFault) SetSinkRef(id int64) { f.SinkID = &id }
func (f *SourceFault) SetSynced(ok bool)   { f.Synced = ok }
func (f *SourceFault) IsSynced() bool      { return f.Synced }

func (f *SourceFault) Fields() map[string]any {
	return faultFields(f.Table, f.RecordID, f.Message, f.Attempts, f.CapturedDate, f.CapturedTime)
}

func (f *SourceFault) NaturalKey() map[string]any {
	return faultKey(f.Table, f.RecordID, f.CapturedDate, f.CapturedTime)
}

// SinkFault records a failed ledger write (list, create or update).
type SinkFault struct {
	ID           uint   `gorm:"column:id;primaryKey"`
	Table        string `gorm:"column:table_name;size:64"`
	RecordID     string `gorm:"column:record_id;size:64"`
	Message      string `gorm:"column:message;size:1024"`
	Attempts     int    `gorm:"column:attempts"`
	CapturedDate string `gorm:"column:captured_date;size:10"`
	CapturedTime string `gorm:"column:captured_time;size:8"`
	SinkID       *int64 `gorm:"column:sink_id"`
	Synced       bool   `gorm:"column:synced"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SinkFault) TableName() string { return "sink_faults" }

func (f *SinkFault) Kind() Kind          { return KindSinkFault }
func (f *SinkFault) LocalID() uint       { return f.ID }
func (f *SinkFault) ExternalKey() string { return f.Table + "/" + f.RecordID }
func (f *SinkFault) SinkRef() *int64     { return f.SinkID }
func (f *SinkFault) SetSinkRef(id int64) { f.SinkID = &id }
func (f *SinkFault) SetSynced(ok bool)   { f.Synced = ok }
func (f *SinkFault) IsSynced() bool      { return f.Synced }

func (f *SinkFault) Fields() map[string]any {
	return faultFields(f.Table, f.RecordID, f.Message, f.Attempts, f.CapturedDate, f.CapturedTime)
}

func (f *SinkFault) NaturalKey() map[string]any {
	return faultKey(f.Table, f.RecordID, f.CapturedDate, f.CapturedTime)
}

// SplitTimestamp deterministically splits a capture timestamp into the date
// and time components stored on fault rows.
func SplitTimestamp(at time.Time) (date, clock string) {
	return at.Format("2006-01-02"), at.Format("15:04:05")
}

func faultFields(table, record, message string, attempts int, date, clock string) map[string]any {
	return map[string]any{
		"table_name":    table,
		"record_id":     record,
		"message":       message,
		"attempts":      attempts,
		"captured_date": date,
		"captured_time": clock,
	}
}

func faultKey(table, record, date, clock string) map[string]any {
	return map[string]any{
		"table_name":    table,
		"record_id":     record,
		"captured_date": date,
		"captured_time": clock,
	}
}
