package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"plain date", `"2024-03-05"`, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 timestamp", `"2024-03-05T14:30:00Z"`, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"empty string", `""`, time.Time{}, false},
		{"garbage", `"yesterday"`, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Time)
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	d := Date{Time: time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)}
	buf, err := json.Marshal(d)
	require.NoError(t, err)
	// Always serialized as a bare date, regardless of how it was parsed.
	assert.Equal(t, `"2024-03-05"`, string(buf))

	buf, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(buf))
}

func TestCaseStatus_Known(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Known(), "%s", s)
	}
	assert.False(t, CaseStatus("ARCHIVED").Known())
	assert.False(t, CaseStatus("").Known())
}

func TestCase_Outstanding(t *testing.T) {
	c := Case{
		AmountOwed: decimal.RequireFromString("150.00"),
		AmountPaid: decimal.RequireFromString("170.00"),
	}
	// Overpayment yields a negative balance; flooring is the caller's job.
	assert.Equal(t, "-20", c.Outstanding().String())
}

func TestPatchSessionRequest_OmitsNilFields(t *testing.T) {
	notes := "updated"
	buf, err := json.Marshal(&PatchSessionRequest{Notes: &notes})
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes":"updated"}`, string(buf))
}
