package app

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a message shown to the user next to the results.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func errorNotice(err error) Notice {
	return Notice{Level: LevelError, Message: "[ERROR] " + UserMessage(err)}
}
