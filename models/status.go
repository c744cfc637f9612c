package models

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "to-do"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
	StatusCancelled  TaskStatus = "cancelled"
)

// TaskStatuses lists every accepted status in display order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{StatusToDo, StatusInProgress, StatusDone, StatusCancelled}
}

// Valid reports whether s is one of the accepted statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

func (s TaskStatus) String() string {
	return string(s)
}
