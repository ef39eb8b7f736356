package main

import (
	"context"
	"fmt"
	"os"

	"zombiezen.com/go/log"

	"github.com/agentdesk/policyminder/client"
	"github.com/agentdesk/policyminder/dates"
)

// Prints the reminders due today and in the coming week against a
// running policyminderd.
func main() {
	ctx := context.Background()

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	log.Infof(ctx, "API_URL: %s", apiURL)

	c := client.NewClient(ctx, apiURL)

	if today, err := c.TodayReminders(); err != nil {
		log.Errorf(ctx, "unable to fetch today's reminders: %v", err)
		os.Exit(-1)
	} else {
		fmt.Printf("Due today: %d\n", len(today))
		for _, reminder := range today {
			fmt.Printf(" * policy %s, payment due %s\n",
				reminder.PolicyID, dates.FormatDate(reminder.DueDate.AddDate(0, 0, dates.ReminderLeadDays)))
		}
	}

	if upcoming, err := c.UpcomingReminders(); err != nil {
		log.Errorf(ctx, "unable to fetch upcoming reminders: %v", err)
		os.Exit(-1)
	} else {
		fmt.Printf("Due within a week: %d\n", len(upcoming))
		for _, reminder := range upcoming {
			fmt.Printf(" * policy %s, reminder on %s\n",
				reminder.PolicyID, dates.FormatDate(reminder.DueDate))
		}
	}
}
