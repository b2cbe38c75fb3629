// ABOUTME: Built-in demo dataset that every session starts from
// ABOUTME: Dates are relative to the session's today so the follow-up hub is populated
package db

import (
	"github.com/harperreed/kinetic/models"
)

// SeedContacts returns the demo contacts. Sarah has an event whose notify date
// is today, Marcus was due yesterday and David is due today.
func SeedContacts(today string) []models.Contact {
	yesterday, err := models.AddDays(today, -1)
	if err != nil {
		yesterday = today
	}

	return []models.Contact{
		{
			ID:            "1",
			Name:          "Sarah Chen",
			Company:       "TechFlow AI",
			Position:      "Senior Product Manager",
			Location:      "San Francisco, CA",
			Education:     "Stanford University",
			LinkedInURL:   "https://linkedin.com/in/sarahchen",
			Status:        models.StatusNurturing,
			Commonalities: []string{"Stanford Alumni", "Former Google", "SF Based"},
			Interactions: []models.Interaction{
				{
					ID:             "int1",
					Date:           "2024-05-10",
					Duration:       45,
					Notes:          "Discussed the future of generative AI in B2B SaaS.",
					Hook:           "She loves bouldering at Mission Cliffs.",
					ValueReceived:  "Insights on GTM strategy for AI startups.",
					AltruismRecord: "Introduced her to a lead investor at Sequoia.",
					Score:          9,
				},
			},
			CreatedAt:        "2024-01-15",
			FollowUpInterval: 90,
			NextFollowUpDate: "2024-08-10",
			OneOffEvents: []models.OneOffEvent{
				{
					ID:         "e1",
					Name:       "New Product Launch",
					EventDate:  "2024-12-01",
					NotifyDate: today,
				},
			},
		},
		{
			ID:               "2",
			Name:             "Marcus Thorne",
			Company:          "GreenHorizon Ventures",
			Position:         "Partner",
			Location:         "London, UK",
			Education:        "Oxford University",
			LinkedInURL:      "https://linkedin.com/in/marcusthorne",
			Status:           models.StatusConnected,
			Commonalities:    []string{"Venture Capital", "Oxford Alumni"},
			Interactions:     []models.Interaction{},
			CreatedAt:        "2024-03-22",
			FollowUpInterval: 30,
			NextFollowUpDate: yesterday,
			OneOffEvents:     []models.OneOffEvent{},
		},
		{
			ID:               "3",
			Name:             "Elena Rodriguez",
			Company:          "FinLeap",
			Position:         "CTO",
			Location:         "Berlin, Germany",
			Education:        "TU Munich",
			LinkedInURL:      "https://linkedin.com/in/elenarodriguez",
			Status:           models.StatusPending,
			Commonalities:    []string{"Fintech Enthusiast", "Europe Tech"},
			Interactions:     []models.Interaction{},
			CreatedAt:        "2024-05-01",
			FollowUpInterval: 14,
			NextFollowUpDate: "2024-06-15",
			OneOffEvents:     []models.OneOffEvent{},
		},
		{
			ID:            "4",
			Name:          "David Kim",
			Company:       "Meta",
			Position:      "E6 Software Engineer",
			Location:      "Seattle, WA",
			Education:     "University of Washington",
			LinkedInURL:   "https://linkedin.com/in/davidkim",
			Status:        models.StatusCoffeeScheduled,
			Commonalities: []string{"Former Coworker", "Seattle Resident"},
			Interactions: []models.Interaction{
				{
					ID:             "int2",
					Date:           "2024-05-05",
					Duration:       30,
					Notes:          "Catch up on distributed systems architecture.",
					Hook:           "He is currently learning to play the cello.",
					ValueReceived:  "Referral for an engineering lead position.",
					AltruismRecord: "Helped him debug a production issue in his side project.",
					Score:          8,
				},
			},
			CreatedAt:        "2024-04-10",
			FollowUpInterval: 30,
			NextFollowUpDate: today,
			OneOffEvents:     []models.OneOffEvent{},
		},
	}
}
