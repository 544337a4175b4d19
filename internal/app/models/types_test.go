package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2010, time.May, 20)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2010-05-20"`, string(raw))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2010-05-20"`), &parsed))
	assert.True(t, parsed.Equal(d.Time))

	assert.Error(t, json.Unmarshal([]byte(`"20/05/2010"`), &parsed))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2010, time.May, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2010-05-20", d.Format(DateFormat))

	require.NoError(t, d.Scan("2011-01-02"))
	assert.Equal(t, "2011-01-02", d.Format(DateFormat))

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}
