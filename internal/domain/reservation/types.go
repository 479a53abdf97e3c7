package reservation

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusReleased  Status = "released"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusReleased, StatusExpired:
		return true
	default:
		return false
	}
}
