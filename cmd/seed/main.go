package main

import (
	"log"
	"os"
	"time"

	"client-retention-be/internal/model"
	"client-retention-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo account with a handful of clients and cancellation history so
// the analytics endpoint returns something interesting on a fresh install.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo account...")

	var existing model.User
	if err := db.Where("email = ?", "demo@retaindesk.local").First(&existing).Error; err == nil {
		color.Yellow("Demo account already exists, skipping.")
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	hashStr := string(hash)

	owner := model.User{
		Id:           uuid.New(),
		Email:        "demo@retaindesk.local",
		FullName:     "Demo Owner",
		PasswordHash: &hashStr,
	}
	if err := db.Create(&owner).Error; err != nil {
		log.Fatalf("Error creating demo user: %v", err)
	}
	color.Green("Created owner: %s", owner.Email)

	now := time.Now()

	acme := uuid.New()
	globex := uuid.New()
	initech := uuid.New()

	clients := []model.Client{
		{
			Id: acme, UserId: owner.Id, Name: "Acme Corp", DiscountRate: 20,
			Status: "active", SubscriptionStartDate: now.AddDate(0, -6, 0), NextBillingDate: now.AddDate(0, 1, 0),
		},
		{
			Id: globex, UserId: owner.Id, Name: "Globex", DiscountRate: 15,
			Status: "cancelled", SubscriptionStartDate: now.AddDate(0, -3, 0), NextBillingDate: now.AddDate(0, -2, 0),
		},
		{
			Id: initech, UserId: owner.Id, Name: "Initech", DiscountRate: 10,
			Status: "active", SubscriptionStartDate: now.AddDate(0, -1, 0), NextBillingDate: now.AddDate(0, 1, 0),
		},
	}

	for i := range clients {
		if err := db.Create(&clients[i]).Error; err != nil {
			log.Fatalf("Error creating client %s: %v", clients[i].Name, err)
		}
		color.Green("Created client: %s", clients[i].Name)
	}

	events := []model.Cancellation{
		{
			Id: uuid.New(), ClientId: acme, ActorLabel: "owner:demo",
			DiscountOffered: true, Accepted: false, Reason: "Too expensive",
			Feedback: "Might come back next quarter", CreatedAt: now.AddDate(0, -2, 0),
		},
		{
			Id: uuid.New(), ClientId: acme, ActorLabel: "owner:demo",
			DiscountOffered: true, Accepted: true, Reason: "Too expensive",
			CreatedAt: now.AddDate(0, -1, 0),
		},
		{
			Id: uuid.New(), ClientId: globex, ActorLabel: "support:anna",
			DiscountOffered: true, Accepted: false, Reason: "Switched providers",
			CreatedAt: now.AddDate(0, 0, -10),
		},
	}

	for i := range events {
		if err := db.Create(&events[i]).Error; err != nil {
			log.Fatalf("Error creating cancellation event: %v", err)
		}
	}
	color.Green("Created %d cancellation events", len(events))

	color.Cyan("Seeding completed.")
}
