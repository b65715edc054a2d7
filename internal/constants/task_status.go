package constants

import "strings"

type TaskStatus string

const (
	StatusNotStarted TaskStatus = "Belum Dimulai"
	StatusInProgress TaskStatus = "Sedang Dikerjakan"
	StatusDone       TaskStatus = "Selesai"
)

var TaskStatuses = []TaskStatus{StatusNotStarted, StatusInProgress, StatusDone}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// SummaryKey returns the dashboard bucket name for a status. Statuses outside
// the enumeration are lower-cased with spaces replaced by underscores.
func (s TaskStatus) SummaryKey() string {
	switch s {
	case StatusNotStarted:
		return "belum_dimulai"
	case StatusInProgress:
		return "sedang_dikerjakan"
	case StatusDone:
		return "selesai"
	}
	return strings.ReplaceAll(strings.ToLower(string(s)), " ", "_")
}
