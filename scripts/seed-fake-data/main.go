// Seeds the local database with fake contact requests and bookings so
// the admin views have something to show during development.
//
// Usage: go run . [path/to/colemanmx.db]
package main

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	numContactRequests = 20
	numBookings        = 30
)

var slots = []string{"08:00", "10:00", "13:00", "15:00"}

var packages = []string{"private-2h", "semi-private-2h", "group-clinic"}

var skillLevels = []string{"beginner", "intermediate", "advanced"}

var statuses = []string{"pending", "confirmed", "completed", "cancelled"}

func main() {
	dbPath := "./db/colemanmx.db"
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}

	database, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedContactRequests(database); err != nil {
		log.Fatalf("failed to seed contact requests: %v", err)
	}
	if err := seedBookings(database); err != nil {
		log.Fatalf("failed to seed bookings: %v", err)
	}

	fmt.Printf("seeded %d contact requests and %d bookings into %s\n", numContactRequests, numBookings, dbPath)
}

func seedContactRequests(database *sql.DB) error {
	subjects := []string{
		"Coaching availability",
		"Track day question",
		"Gear sizing",
		"Group clinic info",
		"Sponsorship inquiry",
	}

	for i := 0; i < numContactRequests; i++ {
		_, err := database.Exec(`
			INSERT INTO contact_requests (id, first_name, last_name, email, phone, subject, message, recaptcha_score, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(),
			gofakeit.FirstName(),
			gofakeit.LastName(),
			gofakeit.Email(),
			gofakeit.Phone(),
			subjects[rand.Intn(len(subjects))],
			gofakeit.Paragraph(1, 3, 12, " "),
			0.5+rand.Float64()*0.5,
			gofakeit.DateRange(time.Now().AddDate(0, -2, 0), time.Now()),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedBookings(database *sql.DB) error {
	for i := 0; i < numBookings; i++ {
		date := gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 2, 0))
		_, err := database.Exec(`
			INSERT INTO bookings (id, customer_name, email, phone, package, skill_level, requested_date, requested_slot, notes, status, recaptcha_score)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(),
			gofakeit.Name(),
			gofakeit.Email(),
			gofakeit.Phone(),
			packages[rand.Intn(len(packages))],
			skillLevels[rand.Intn(len(skillLevels))],
			date.Format("2006-01-02"),
			slots[rand.Intn(len(slots))],
			gofakeit.Sentence(8),
			statuses[rand.Intn(len(statuses))],
			0.5+rand.Float64()*0.5,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
