package models

import "github.com/google/uuid"

// Client-generated ids keep the resource prefix the backend expects but use a
// UUID body; millisecond-epoch suffixes collide under rapid creation.

func NewTaskID() string {
	return "task-" + uuid.NewString()
}

func NewEntryID() string {
	return "entry-" + uuid.NewString()
}
