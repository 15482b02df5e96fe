package ports

// Level classifies a user-visible notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notification is a short outcome message shown to the user.
type Notification struct {
	Level   Level
	Message string
}

// Notifier delivers notifications to whatever surface displays them.
type Notifier interface {
	Notify(n Notification)
}
