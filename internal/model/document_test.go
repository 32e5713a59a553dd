package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		parsed, err := ParseDate("01/31/2014")
		require.NoError(t, err)
		require.NotNil(t, parsed)
		assert.Equal(t, time.Date(2014, 1, 31, 0, 0, 0, 0, time.UTC), *parsed)
	})

	t.Run("empty is nil, not an error", func(t *testing.T) {
		parsed, err := ParseDate("")
		assert.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("wrong format", func(t *testing.T) {
		_, err := ParseDate("2014-01-31")
		assert.Error(t, err)
	})
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(nil))

	d := time.Date(2014, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "01/31/2014", FormatDate(&d))
}

func TestDocumentStrings(t *testing.T) {
	doc := &Document{DateUploaded: time.Date(2014, 2, 1, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, "02/01/2014", doc.DateUploadedString())
	assert.Equal(t, "", doc.DateRequestedString())
	assert.Equal(t, "", doc.TrackingNumberString())

	tracking := "FOIA-2014-001"
	doc.TrackingNumber = &tracking
	assert.Equal(t, "FOIA-2014-001", doc.TrackingNumberString())
}
