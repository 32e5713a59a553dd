package model

import (
	"time"
)

// DateFormat is the calendar date format used everywhere dates cross the
// HTTP surface (forms, rendered pages).
const DateFormat = "01/02/2006"

const (
	DefaultUploaderName  = "anonymous"
	DefaultUploaderEmail = "anonymous@example.com"
)

// Document is one row of catalog metadata describing an uploaded file.
// Its id doubles as the storage directory name holding the file itself.
type Document struct {
	ID             int64      `db:"id"`
	DocTitle       string     `db:"doc_title"`
	DocDescription string     `db:"doc_description"`
	SourceOrg      string     `db:"source_org"`
	TrackingNumber *string    `db:"tracking_number"`
	DateRequested  *time.Time `db:"date_requested"`
	DateReceived   *time.Time `db:"date_received"`
	UploaderName   string     `db:"uploader_name"`
	UploaderEmail  string     `db:"uploader_email"`
	Filename       string     `db:"filename"`
	DateUploaded   time.Time  `db:"date_uploaded"` // set at creation, immutable
}

// ValueCount is one row of a grouped count query (orgs, submitters).
type ValueCount struct {
	Value string `db:"value"`
	Count int    `db:"count"`
}

// ParseDate coerces a form date string in DateFormat. Empty input is not an
// error and yields nil.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateFormat, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders an optional date in DateFormat, or "" when unset.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateFormat)
}

func (d *Document) DateRequestedString() string {
	return FormatDate(d.DateRequested)
}

func (d *Document) DateReceivedString() string {
	return FormatDate(d.DateReceived)
}

func (d *Document) DateUploadedString() string {
	return d.DateUploaded.Format(DateFormat)
}

func (d *Document) TrackingNumberString() string {
	if d.TrackingNumber == nil {
		return ""
	}
	return *d.TrackingNumber
}
