package intake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"substation-inspection-backend/internal/dedupe"
	"substation-inspection-backend/internal/gsheets"
	"substation-inspection-backend/internal/model"
	"substation-inspection-backend/internal/notification"
	"substation-inspection-backend/internal/store"
)

type fakeUploader struct {
	resolveErr error
	uploadErr  error
	resolved   int
	uploaded   []string
}

func (f *fakeUploader) ResolveDailyFolder(_ context.Context, substation string, _ time.Time) (string, error) {
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	f.resolved++
	return "daily-" + substation, nil
}

func (f *fakeUploader) Upload(_ context.Context, _, name, _ string, _ []byte) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploaded = append(f.uploaded, name)
	return nil
}

func (f *fakeUploader) FolderLink(id string) string { return "https://drive.example/" + id }

type fakeSheets struct {
	appendErr error
	rows      []gsheets.Row
}

func (f *fakeSheets) AppendInspectionRow(_ context.Context, row gsheets.Row) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.rows = append(f.rows, row)
	return nil
}

type fakeStore struct {
	store.Store
	insertErr error
	inserted  []*model.InspectionLog
}

func (f *fakeStore) InsertLog(_ context.Context, rec *model.InspectionLog) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, rec)
	return nil
}

type fakeNotifier struct {
	jobs []notification.Job
}

func (f *fakeNotifier) Dispatch(job notification.Job) { f.jobs = append(f.jobs, job) }

func testSubmission() Submission {
	return Submission{
		EmployeeID:     "123456",
		SubstationName: "สามชุก",
		Lat:            "14.7518",
		Lng:            "100.0930",
		Timestamp:      time.Date(2026, 8, 30, 10, 30, 0, 0, time.Local),
		Photos: []Photo{
			{Name: "fixedpoint_1_1030_300826.jpg", ContentType: "image/jpeg", Data: []byte("a")},
			{Name: "checklist_1_1030_300826.jpg", ContentType: "image/jpeg", Data: []byte("b")},
		},
	}
}

func newTestService(up *fakeUploader, sh *fakeSheets, st *fakeStore, n *fakeNotifier) *Service {
	return NewService(dedupe.New(10*time.Second), up, sh, st, n)
}

func TestSubmitHappyPath(t *testing.T) {
	up := &fakeUploader{}
	sh := &fakeSheets{}
	st := &fakeStore{}
	n := &fakeNotifier{}
	svc := newTestService(up, sh, st, n)

	result, err := svc.Submit(context.Background(), testSubmission())
	require.NoError(t, err)

	assert.False(t, result.Duplicate)
	assert.Equal(t, "daily-สามชุก", result.FolderID)
	assert.Equal(t, SinkOK, result.Sinks.Storage)
	assert.Equal(t, SinkOK, result.Sinks.Database)
	assert.Equal(t, SinkOK, result.Sinks.Spreadsheet)

	assert.Len(t, up.uploaded, 2)
	require.Len(t, st.inserted, 1)
	assert.Equal(t, "123456", st.inserted[0].EmployeeID)
	assert.InDelta(t, 14.7518, st.inserted[0].GPSLat, 1e-9)
	assert.Equal(t, "completed", st.inserted[0].Status)

	require.Len(t, sh.rows, 1)
	assert.Equal(t, "https://drive.example/daily-สามชุก", sh.rows[0].FolderLink)

	require.Len(t, n.jobs, 1)
	assert.Equal(t, "สามชุก", n.jobs[0].SubstationName)
}

func TestSubmitDuplicateWritesNothing(t *testing.T) {
	up := &fakeUploader{}
	sh := &fakeSheets{}
	st := &fakeStore{}
	svc := newTestService(up, sh, st, &fakeNotifier{})

	first, err := svc.Submit(context.Background(), testSubmission())
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	second, err := svc.Submit(context.Background(), testSubmission())
	require.NoError(t, err)
	assert.True(t, second.Duplicate)

	// No second storage, relational or spreadsheet write.
	assert.Equal(t, 1, up.resolved)
	assert.Len(t, up.uploaded, 2)
	assert.Len(t, st.inserted, 1)
	assert.Len(t, sh.rows, 1)
}

func TestSubmitUploadFailureIsFatal(t *testing.T) {
	up := &fakeUploader{uploadErr: errors.New("quota exceeded")}
	sh := &fakeSheets{}
	st := &fakeStore{}
	svc := newTestService(up, sh, st, &fakeNotifier{})

	_, err := svc.Submit(context.Background(), testSubmission())
	require.Error(t, err)

	// Secondary sinks never ran.
	assert.Empty(t, st.inserted)
	assert.Empty(t, sh.rows)
}

func TestSubmitDatabaseFailureIsSoft(t *testing.T) {
	up := &fakeUploader{}
	sh := &fakeSheets{}
	st := &fakeStore{insertErr: errors.New("connection refused")}
	svc := newTestService(up, sh, st, &fakeNotifier{})

	result, err := svc.Submit(context.Background(), testSubmission())
	require.NoError(t, err)

	assert.Equal(t, SinkOK, result.Sinks.Storage)
	assert.Equal(t, SinkFailed, result.Sinks.Database)
	assert.Equal(t, SinkOK, result.Sinks.Spreadsheet)
	assert.NotEmpty(t, result.FolderID)
}

func TestSubmitSpreadsheetFailureIsSoft(t *testing.T) {
	up := &fakeUploader{}
	sh := &fakeSheets{appendErr: errors.New("api error")}
	st := &fakeStore{}
	svc := newTestService(up, sh, st, &fakeNotifier{})

	result, err := svc.Submit(context.Background(), testSubmission())
	require.NoError(t, err)

	assert.Equal(t, SinkOK, result.Sinks.Database)
	assert.Equal(t, SinkFailed, result.Sinks.Spreadsheet)
}

func TestSubmitDefaultsMissingFields(t *testing.T) {
	up := &fakeUploader{}
	sh := &fakeSheets{}
	st := &fakeStore{}
	svc := newTestService(up, sh, st, &fakeNotifier{})

	sub := testSubmission()
	sub.EmployeeID = ""
	sub.Lat = ""
	sub.Lng = ""

	_, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)

	require.Len(t, st.inserted, 1)
	assert.Equal(t, UnknownEmployee, st.inserted[0].EmployeeID)
	assert.Equal(t, 0.0, st.inserted[0].GPSLat)
	require.Len(t, sh.rows, 1)
	assert.Equal(t, "0", sh.rows[0].Lat)
	assert.Equal(t, "0", sh.rows[0].Lng)
}

func TestSubmitNilSheetsSkips(t *testing.T) {
	up := &fakeUploader{}
	st := &fakeStore{}
	svc := NewService(dedupe.New(10*time.Second), up, nil, st, nil)

	result, err := svc.Submit(context.Background(), testSubmission())
	require.NoError(t, err)
	assert.Equal(t, SinkSkipped, result.Sinks.Spreadsheet)
	assert.Equal(t, SinkOK, result.Sinks.Database)
}

func TestSubmitNoUploader(t *testing.T) {
	svc := NewService(dedupe.New(10*time.Second), nil, nil, &fakeStore{}, nil)

	_, err := svc.Submit(context.Background(), testSubmission())
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}
