package model

import "time"

// InspectionLog is one accepted inspection submission. One row per
// submission; uniqueness is only approximated by the in-memory
// deduplicator, so duplicate rows are possible across restarts.
type InspectionLog struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID     string    `gorm:"column:employee_id;size:64;not null" json:"employee_id"`
	SubstationName string    `gorm:"column:substation_name;size:256;not null;index" json:"substation_name"`
	Timestamp      time.Time `gorm:"column:timestamp;not null;index" json:"timestamp"`
	GPSLat         float64   `gorm:"column:gps_lat" json:"gps_lat"`
	GPSLng         float64   `gorm:"column:gps_lng" json:"gps_lng"`
	FolderID       string    `gorm:"column:folder_id;size:128" json:"folder_id"`
	Status         string    `gorm:"column:status;size:32;not null;default:completed" json:"status"`
}

// TableName keeps the table name singular-free and explicit.
func (InspectionLog) TableName() string { return "inspection_logs" }
