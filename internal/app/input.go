package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const DefaultCount = 10

var (
	ErrInvalidCount = errors.New("job count must be a positive integer")
	ErrMissingInput = errors.New("job title and location are required")
)

// userMessages is the text shown in the UI for the input errors.
var userMessages = map[error]string{
	ErrInvalidCount: "Job count must be a positive integer.",
	ErrMissingInput: "Please enter both job title and location.",
}

// UserMessage returns the UI text for err, or err.Error() if it has none.
func UserMessage(err error) string {
	for target, msg := range userMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return err.Error()
}

// Input is what the user typed into the form.
type Input struct {
	Title    string `form:"title" json:"title"`
	Location string `form:"location" json:"location"`
	Count    string `form:"count" json:"count"`
}

// ParseCount parses a positive job count. On failure it returns def together
// with an error; callers are expected to continue with def.
func ParseCount(s string, def int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def, fmt.Errorf("%w, got %q", ErrInvalidCount, s)
	}
	if n <= 0 {
		return def, ErrInvalidCount
	}
	return n, nil
}

// Validate reports ErrMissingInput when the title or the location is blank.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Location) == "" {
		return ErrMissingInput
	}
	return nil
}

// ScrapingMessage is the progress line shown while a run is in flight.
func ScrapingMessage(in Input) string {
	return fmt.Sprintf("Scraping LinkedIn jobs for '%s' in '%s'...",
		strings.TrimSpace(in.Title), strings.TrimSpace(in.Location))
}
