package domain

import "encoding/json"

const SettingSMSEnabled = "sms_enabled"

type StoreSetting struct {
	Key   string          `json:"key" db:"key"`
	Value json.RawMessage `json:"value" db:"value"`
}
