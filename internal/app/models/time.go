package models

import "time"

type TimeModel struct {
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (m *TimeModel) SetCreatedAtUpdatedAt(now time.Time) {
	m.CreatedAt = now
	m.UpdatedAt = now
}

func (m *TimeModel) SetUpdatedAt(now time.Time) {
	m.UpdatedAt = now
}
