package api

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"substation-inspection-backend/internal/evidence"
	"substation-inspection-backend/internal/intake"
	"substation-inspection-backend/internal/parse"
)

// UploadInspection handles POST /api/upload-inspection: a multipart
// submission carrying employeeId, substationName, lat, lng, timestamp
// and the photo files.
func (h *Handler) UploadInspection(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	substationName := c.PostForm("substationName")
	if substationName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "substationName is required"})
		return
	}

	ts := parseClientTimestamp(c.PostForm("timestamp"))

	fileHeaders := form.File["photos"]
	if len(fileHeaders) == 0 {
		fileHeaders = form.File["photos[]"]
	}
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one photo is required"})
		return
	}

	photos := make([]intake.Photo, 0, len(fileHeaders))
	for i, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
			return
		}

		name := fh.Filename
		if pf, err := parse.ParseField(fh.Filename); err == nil {
			name = evidence.Filename(pf.Category, pf.Index, ts)
		} else {
			log.Printf("keeping original filename for photo %d: %v", i, err)
		}

		contentType := fh.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}

		photos = append(photos, intake.Photo{
			Name:        name,
			ContentType: contentType,
			Data:        evidence.Process(data, ts),
		})
	}

	result, err := h.intake.Submit(c.Request.Context(), intake.Submission{
		EmployeeID:     c.PostForm("employeeId"),
		SubstationName: substationName,
		Lat:            c.PostForm("lat"),
		Lng:            c.PostForm("lng"),
		Timestamp:      ts,
		Photos:         photos,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Duplicate {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Duplicate request ignored"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"folderId": result.FolderID,
		"sinks":    result.Sinks,
	})
}

// parseClientTimestamp accepts RFC3339 or epoch milliseconds; anything
// else falls back to the server clock.
func parseClientTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Now()
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Local()
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms)
	}
	return time.Now()
}
