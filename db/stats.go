// ABOUTME: Conversion metrics, kanban grouping and growth trend
// ABOUTME: Pure functions over a contact collection
package db

import (
	"fmt"
	"math"

	"github.com/harperreed/kinetic/models"
)

// Stats are the funnel conversion numbers shown in the workflow header.
type Stats struct {
	Total                 int `json:"total"`
	Connected             int `json:"connected"`
	Coffee                int `json:"coffee"`
	InvitationSuccessRate int `json:"invitation_success_rate"`
	CoffeeConversionRate  int `json:"coffee_conversion_rate"`
}

var connectedStatuses = map[models.Status]bool{
	models.StatusConnected:       true,
	models.StatusCoffeeScheduled: true,
	models.StatusNurturing:       true,
	models.StatusFollowUpNeeded:  true,
}

var coffeeStatuses = map[models.Status]bool{
	models.StatusCoffeeScheduled: true,
	models.StatusNurturing:       true,
	models.StatusFollowUpNeeded:  true,
}

// ComputeStats counts connected and coffee-stage contacts and derives the
// invitation success (connected/total) and coffee conversion (coffee/connected)
// percentages.
func ComputeStats(contacts []models.Contact) Stats {
	st := Stats{Total: len(contacts)}
	for _, c := range contacts {
		if connectedStatuses[c.Status] {
			st.Connected++
		}
		if coffeeStatuses[c.Status] {
			st.Coffee++
		}
	}
	st.InvitationSuccessRate = Percent(st.Connected, st.Total)
	st.CoffeeConversionRate = Percent(st.Coffee, st.Connected)
	return st
}

// Percent returns round(100*part/whole), or 0 when whole is 0. The result is
// clamped to [0,100].
func Percent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	p := int(math.Round(float64(part) / float64(whole) * 100))
	if p > 100 {
		return 100
	}
	return p
}

// Column is one kanban lane.
type Column struct {
	Status   models.Status    `json:"status"`
	Contacts []models.Contact `json:"contacts"`
}

// Board groups contacts by status in lifecycle order. Every stage is present,
// empty lanes included.
func Board(contacts []models.Contact) []Column {
	cols := make([]Column, len(models.Statuses))
	index := make(map[models.Status]int, len(models.Statuses))
	for i, s := range models.Statuses {
		cols[i] = Column{Status: s, Contacts: []models.Contact{}}
		index[s] = i
	}
	for _, c := range contacts {
		if i, ok := index[c.Status]; ok {
			cols[i].Contacts = append(cols[i].Contacts, c.Clone())
		}
	}
	return cols
}

// TrendPoint is one week of growth.
type TrendPoint struct {
	Name        string `json:"name"`
	Start       string `json:"start"`
	Connections int    `json:"connections"`
	Chats       int    `json:"chats"`
}

// GrowthTrend buckets the last n weeks ending today. Connections are contacts
// created in the week that have since reached at least Connected; chats are
// interactions logged in the week.
func GrowthTrend(contacts []models.Contact, today string, weeks int) ([]TrendPoint, error) {
	if weeks <= 0 {
		return nil, nil
	}
	points := make([]TrendPoint, weeks)
	ends := make([]string, weeks)
	for i := 0; i < weeks; i++ {
		end, err := models.AddDays(today, -7*(weeks-1-i))
		if err != nil {
			return nil, err
		}
		start, err := models.AddDays(end, -6)
		if err != nil {
			return nil, err
		}
		ends[i] = end
		points[i] = TrendPoint{Name: weekName(i + 1), Start: start}
	}

	bucket := func(date string) int {
		for i := range points {
			if date >= points[i].Start && date <= ends[i] {
				return i
			}
		}
		return -1
	}

	for _, c := range contacts {
		if connectedStatuses[c.Status] {
			if i := bucket(c.CreatedAt); i >= 0 {
				points[i].Connections++
			}
		}
		for _, in := range c.Interactions {
			if i := bucket(in.Date); i >= 0 {
				points[i].Chats++
			}
		}
	}
	return points, nil
}

func weekName(n int) string {
	return fmt.Sprintf("Week %d", n)
}
