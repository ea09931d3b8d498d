package models

import (
	"time"
)

type EventType string

const (
	EventTypeProfileSeeded EventType = "profile.seeded"
)

type ProfileEvent struct {
	EventType    EventType `json:"eventType"`
	ProfileID    string    `json:"profileId"`
	Name         string    `json:"name"`
	ProjectCount int       `json:"projectCount"`
	Timestamp    time.Time `json:"timestamp"`
}
