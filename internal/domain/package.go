package domain

import "time"

// Package is a purchasable subscription tier.
type Package struct {
	ID           string
	Name         string
	Type         string
	DurationDays int
	Price        float64
	Features     []string
	IsActive     bool
	CreatedAt    time.Time
}
