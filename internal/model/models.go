package model

import (
	"strings"
	"time"
)

type ID = uint

// Class determines the billing rate and the monthly rollover treatment
// of a vehicle. Anything that is not RESIDENT or OFFICIAL is STANDARD.
type Class string

const (
	ClassResident Class = "RESIDENT"
	ClassOfficial Class = "OFFICIAL"
	ClassStandard Class = "STANDARD"
)

func ParseClass(s string) Class {
	switch Class(strings.ToUpper(strings.TrimSpace(s))) {
	case ClassResident:
		return ClassResident
	case ClassOfficial:
		return ClassOfficial
	default:
		return ClassStandard
	}
}

func (c Class) String() string {
	return string(c)
}

// Vehicle is keyed by its plate. There is no surrogate id.
type Vehicle struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Class Class `json:"class" db:"class"`
}

// Session is one stay of a vehicle in the facility. A nil Exit means the
// vehicle is still inside; Minutes stays 0 until the session is closed.
type Session struct {
	ID        ID        `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Vehicle string     `json:"vehicleId" db:"vehicle_id"`
	Entry   time.Time  `json:"entryTime" db:"entry_time"`
	Exit    *time.Time `json:"exitTime" db:"exit_time"`
	Minutes int        `json:"minutes" db:"minutes"`
}

// Open reports whether the session has no departure yet.
func (s Session) Open() bool {
	return s.Exit == nil
}

// StayMinutes converts an elapsed stay to whole minutes, truncating the
// partial minute toward zero. Billing rounds money, never time.
func StayMinutes(entry, exit time.Time) int {
	return int(exit.Sub(entry).Minutes())
}
