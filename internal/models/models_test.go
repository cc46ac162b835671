package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTime_UnmarshalPocketBaseLayout(t *testing.T) {
	var d DateTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-01 10:20:30.123Z"`), &d))

	assert.Equal(t, time.Date(2024, 3, 1, 10, 20, 30, 123000000, time.UTC), d.Time)
}

func TestDateTime_UnmarshalRFC3339(t *testing.T) {
	var d DateTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-01T10:20:30Z"`), &d))

	assert.Equal(t, time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC), d.Time)
}

func TestDateTime_UnmarshalEmpty(t *testing.T) {
	d := DateTime{Time: time.Now()}
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))

	assert.True(t, d.IsZero())
}

func TestDateTime_UnmarshalGarbage(t *testing.T) {
	var d DateTime
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestDateTime_MarshalRoundsThroughLayout(t *testing.T) {
	b, err := json.Marshal(DateTime{Time: time.Date(2024, 3, 1, 10, 20, 30, 5000000, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01 10:20:30.005Z"`, string(b))

	b, err = json.Marshal(DateTime{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(b))
}

func TestUsersRecord_Decode(t *testing.T) {
	payload := `{
		"id": "abc123def456ghi",
		"collectionId": "_pb_users_auth_",
		"collectionName": "users",
		"created": "2024-01-02 03:04:05.000Z",
		"updated": "2024-01-02 03:04:06.000Z",
		"email": "jb@example.com",
		"emailVisibility": true,
		"verified": false,
		"name": "JB",
		"avatar": "me.png"
	}`

	var u UsersRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &u))

	assert.Equal(t, "abc123def456ghi", u.ID)
	assert.Equal(t, Users, u.CollectionName)
	assert.Equal(t, "jb@example.com", u.Email)
	assert.True(t, u.EmailVisibility)
	assert.Equal(t, "JB", u.Name)
	assert.Equal(t, 2024, u.Created.Year())
}
