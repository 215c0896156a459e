package domain

import (
	"fmt"
	"time"
)

const (
	MinTermNumber = 1
	MaxTermNumber = 15
)

type Group struct {
	ID            string
	Career        string
	TermNumber    int
	GroupNumber   int
	GeneratedName string
	Active        bool
	TermID        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// GroupName renders the display name from the career's catalog code and the
// term and group numbers, e.g. "TIDS1-1".
func GroupName(careerCode string, termNumber, groupNumber int) string {
	return fmt.Sprintf("%s%d-%d", careerCode, termNumber, groupNumber)
}
