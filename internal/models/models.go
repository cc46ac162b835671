package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Collection names known to the application
const (
	Users = "users"
)

// PocketBase stores datetimes as "2006-01-02 15:04:05.000Z" in UTC
const dateTimeLayout = "2006-01-02 15:04:05.000Z"

// DateTime wraps the timestamp format PocketBase emits for created/updated
// and date fields. An empty string decodes to the zero time.
type DateTime struct {
	time.Time
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(dateTimeLayout, raw)
	if err != nil {
		// Older servers and hand-written fixtures use RFC3339
		t, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return err
		}
	}
	d.Time = t.UTC()
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.UTC().Format(dateTimeLayout))
}

// Fields every record carries
type BaseSystemFields struct {
	ID             string                     `json:"id"`
	CollectionID   string                     `json:"collectionId"`
	CollectionName string                     `json:"collectionName"`
	Created        DateTime                   `json:"created"`
	Updated        DateTime                   `json:"updated"`
	Expand         map[string]json.RawMessage `json:"expand,omitempty"`
}

// Extra fields of auth collections
type AuthSystemFields struct {
	BaseSystemFields
	Email           string `json:"email"`
	EmailVisibility bool   `json:"emailVisibility"`
	Username        string `json:"username,omitempty"`
	Verified        bool   `json:"verified"`
}

// Users collection
type UsersRecord struct {
	AuthSystemFields
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Writable subset of UsersRecord
type UsersUpdate struct {
	Name            *string `json:"name,omitempty"`
	EmailVisibility *bool   `json:"emailVisibility,omitempty"`
}
