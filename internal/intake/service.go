package intake

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"substation-inspection-backend/internal/dedupe"
	"substation-inspection-backend/internal/gsheets"
	"substation-inspection-backend/internal/model"
	"substation-inspection-backend/internal/notification"
	"substation-inspection-backend/internal/store"
)

// UnknownEmployee is the sentinel recorded when no worker id was sent.
const UnknownEmployee = "ไม่ระบุ"

// ErrStorageNotConfigured is returned when no evidence storage client
// is available; uploads cannot proceed without one.
var ErrStorageNotConfigured = errors.New("evidence storage is not configured")

// Uploader is the evidence storage dependency.
type Uploader interface {
	ResolveDailyFolder(ctx context.Context, substationName string, day time.Time) (string, error)
	Upload(ctx context.Context, folderID, name, contentType string, data []byte) error
	FolderLink(folderID string) string
}

// SheetAppender is the summary spreadsheet dependency.
type SheetAppender interface {
	AppendInspectionRow(ctx context.Context, row gsheets.Row) error
}

// Notifier dispatches a push notification job for an accepted
// submission.
type Notifier interface {
	Dispatch(job notification.Job)
}

// Photo is one uploaded evidence file, already packaged and named.
type Photo struct {
	Name        string
	ContentType string
	Data        []byte
}

// Submission is one inspection intake request.
type Submission struct {
	EmployeeID     string
	SubstationName string
	Lat            string
	Lng            string
	Timestamp      time.Time
	Photos         []Photo
}

// SinkStatus is the per-sink outcome of a submission.
type SinkStatus string

const (
	SinkOK      SinkStatus = "ok"
	SinkFailed  SinkStatus = "failed"
	SinkSkipped SinkStatus = "skipped"
)

// SinkResult enumerates the outcome of each sink so partial failures
// are observable instead of silently swallowed.
type SinkResult struct {
	Storage     SinkStatus `json:"storage"`
	Database    SinkStatus `json:"database"`
	Spreadsheet SinkStatus `json:"spreadsheet"`
}

// Result is the outcome of one submission.
type Result struct {
	FolderID  string
	Duplicate bool
	Sinks     SinkResult
}

// Service fans one logical submission out to the three sinks. Only the
// evidence upload is fatal to the request; the relational row and the
// spreadsheet row are best-effort.
type Service struct {
	dedupe   *dedupe.Deduplicator
	uploader Uploader
	sheets   SheetAppender
	store    store.Store
	notifier Notifier
}

// NewService wires the intake service. uploader may be nil when
// storage is unconfigured (submissions then fail with a clear error);
// sheets and notifier may be nil and are skipped.
func NewService(d *dedupe.Deduplicator, uploader Uploader, sheets SheetAppender, s store.Store, notifier Notifier) *Service {
	return &Service{
		dedupe:   d,
		uploader: uploader,
		sheets:   sheets,
		store:    s,
		notifier: notifier,
	}
}

// Submit processes one inspection submission. A duplicate inside the
// dedupe window returns Result{Duplicate: true} with no sink writes
// and no error: the client is answered with synthetic success so the
// UI does not surface a confusing failure.
func (svc *Service) Submit(ctx context.Context, sub Submission) (*Result, error) {
	if sub.EmployeeID == "" {
		sub.EmployeeID = UnknownEmployee
	}
	if sub.Lat == "" {
		sub.Lat = "0"
	}
	if sub.Lng == "" {
		sub.Lng = "0"
	}
	if sub.Timestamp.IsZero() {
		sub.Timestamp = time.Now()
	}

	if !svc.dedupe.ShouldAccept(sub.EmployeeID, sub.SubstationName, time.Now()) {
		log.Printf("duplicate submission ignored: employee=%s substation=%s", sub.EmployeeID, sub.SubstationName)
		return &Result{Duplicate: true}, nil
	}

	if svc.uploader == nil {
		return nil, ErrStorageNotConfigured
	}

	result := &Result{
		Sinks: SinkResult{
			Storage:     SinkFailed,
			Database:    SinkSkipped,
			Spreadsheet: SinkSkipped,
		},
	}

	folderID, err := svc.uploader.ResolveDailyFolder(ctx, sub.SubstationName, sub.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("folder resolution failed: %w", err)
	}
	for _, p := range sub.Photos {
		// No rollback on failure: earlier files stay in storage.
		if err := svc.uploader.Upload(ctx, folderID, p.Name, p.ContentType, p.Data); err != nil {
			return nil, fmt.Errorf("evidence upload failed: %w", err)
		}
	}
	result.FolderID = folderID
	result.Sinks.Storage = SinkOK

	result.Sinks.Database = svc.writeLogRow(ctx, sub, folderID)
	result.Sinks.Spreadsheet = svc.appendSheetRow(ctx, sub, folderID)

	if svc.notifier != nil {
		svc.notifier.Dispatch(notification.Job{
			EmployeeID:     sub.EmployeeID,
			SubstationName: sub.SubstationName,
		})
	}

	return result, nil
}

func (svc *Service) writeLogRow(ctx context.Context, sub Submission, folderID string) SinkStatus {
	lat, _ := strconv.ParseFloat(sub.Lat, 64)
	lng, _ := strconv.ParseFloat(sub.Lng, 64)

	rec := &model.InspectionLog{
		EmployeeID:     sub.EmployeeID,
		SubstationName: sub.SubstationName,
		Timestamp:      sub.Timestamp,
		GPSLat:         lat,
		GPSLng:         lng,
		FolderID:       folderID,
		Status:         "completed",
	}
	if err := svc.store.InsertLog(ctx, rec); err != nil {
		log.Printf("inspection log insert failed (non-fatal): %v", err)
		return SinkFailed
	}
	return SinkOK
}

func (svc *Service) appendSheetRow(ctx context.Context, sub Submission, folderID string) SinkStatus {
	if svc.sheets == nil {
		return SinkSkipped
	}
	row := gsheets.Row{
		EmployeeID:     sub.EmployeeID,
		SubstationName: sub.SubstationName,
		Timestamp:      sub.Timestamp,
		Lat:            sub.Lat,
		Lng:            sub.Lng,
		FolderLink:     svc.uploader.FolderLink(folderID),
	}
	if err := svc.sheets.AppendInspectionRow(ctx, row); err != nil {
		log.Printf("spreadsheet append failed (non-fatal): %v", err)
		return SinkFailed
	}
	return SinkOK
}
