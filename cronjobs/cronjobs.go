package cronjobs

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/HarshwardhanZalte/AIDRA/sessions"
)

// InitCronJobs starts the periodic jobs. Currently one: a session store
// stats line every 15 minutes. An eviction sweep would hang off the same
// schedule once one is needed.
func InitCronJobs(store sessions.Store) *cron.Cron {
	log.Println("Starting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	_, err := c.AddFunc("*/15 * * * *", func() {
		log.Printf("CronJob: session store holds %d sessions", store.Count())
	})
	if err != nil {
		log.Println("Error scheduling session stats job:", err)
	}

	c.Start()
	return c
}
