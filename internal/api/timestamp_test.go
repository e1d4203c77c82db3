package api_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavopolonio/nlw-journey/internal/api"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	cases := map[string]time.Time{
		`"2025-08-18T14:00:00Z"`:      time.Date(2025, 8, 18, 14, 0, 0, 0, time.UTC),
		`"2025-08-18T14:00:00-03:00"`: time.Date(2025, 8, 18, 17, 0, 0, 0, time.UTC),
		`"2025-08-18T14:00:00"`:       time.Date(2025, 8, 18, 14, 0, 0, 0, time.UTC),
		`"2025-08-18T14:00"`:          time.Date(2025, 8, 18, 14, 0, 0, 0, time.UTC),
		`"2025-08-18"`:                time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		var ts api.Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts), in)
		assert.True(t, want.Equal(ts.Time), "%s: got %s", in, ts.Time)
	}
}

func TestTimestamp_UnmarshalJSON_Invalid(t *testing.T) {
	var ts api.Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"18/08/2025"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`20250818`), &ts))
}

func TestCreateTripRequest_Decode(t *testing.T) {
	body := `{
		"destination": "Florianópolis",
		"starts_at": "2025-08-17",
		"ends_at": "2025-08-23",
		"owner_name": "Ana",
		"owner_email": "ana@x.com",
		"emails_to_invite": ["bob@x.com"]
	}`

	var req api.CreateTripRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.NotNil(t, req.StartsAt)
	assert.Equal(t, 17, req.StartsAt.Day())
	assert.Equal(t, []string{"bob@x.com"}, req.EmailsToInvite)
}

func TestTripIDResponse_Keys(t *testing.T) {
	b, err := json.Marshal(api.ParticipantIDsResponse{ParticipantsID: nil})
	require.NoError(t, err)
	assert.JSONEq(t, `{"participantsId": null}`, string(b))

	b, err = json.Marshal(api.ErrorResponse{Message: "not found"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message": "not found"}`, string(b), "errors omitted when empty")
}
