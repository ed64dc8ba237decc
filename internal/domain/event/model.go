package event

import "time"

const (
	StatusScheduled = "scheduled"
	StatusFinished  = "finished"
)

type Event struct {
	ID     string
	Name   string
	Date   time.Time
	Status string
}
