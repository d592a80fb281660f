package harness

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TimestampLayout is the human-readable timestamp written into exports.
const TimestampLayout = "2006-01-02 15:04:05"

// ExportMIMEType is the content type of an encoded ExportRecord.
const ExportMIMEType = "application/json"

// ExportRecord is the immutable snapshot of one completed dispatch. The
// timestamp is captured when the record is built, not when it is encoded.
type ExportRecord struct {
	Query     string     `json:"query"`
	Results   *ResultSet `json:"results"`
	Timestamp string     `json:"timestamp"`
}

// BuildRecord packages a query and its ResultSet with the current time.
func BuildRecord(query string, rs *ResultSet) *ExportRecord {
	return buildRecordAt(query, rs, time.Now())
}

func buildRecordAt(query string, rs *ResultSet, now time.Time) *ExportRecord {
	return &ExportRecord{
		Query:     query,
		Results:   rs,
		Timestamp: now.Format(TimestampLayout),
	}
}

// Encode serializes the record as indented UTF-8 JSON with stable key order
// (query, results, timestamp; results in registry order).
func (r *ExportRecord) Encode() ([]byte, error) {
	if r == nil {
		return nil, errors.New("harness: nil export record")
	}
	return json.MarshalIndent(r, "", "  ")
}

// ExportFilename names an export file from the moment of download.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("rag_comparison_%d.json", now.Unix())
}
