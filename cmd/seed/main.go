package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"seatwise/internal/events"
	"seatwise/internal/seatmap"
	"seatwise/internal/shared/config"
	"seatwise/internal/shared/database"
	"seatwise/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Seatwise Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"booking_seats",
		"bookings",
		"booked_seats",
		"events",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedEvents(userIDs["admin"]); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates 3 users: 1 admin and 2 regular users
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"admin", "Admin", "User", "admin@seatwise.local", users.RoleAdmin},
		{"user1", "Asha", "Rao", "asha@seatwise.local", users.RoleUser},
		{"user2", "Omar", "Haddad", "omar@seatwise.local", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedEvents creates one event with a designed custom map and one on the
// legacy uniform grid.
func (s *Seeder) SeedEvents(adminID uuid.UUID) error {
	fmt.Println("  🎪 Seeding events...")

	// Designed event: the submission goes through the same sanitizer the
	// admin API uses, so stored documents match production exactly.
	doc, err := seatmap.SanitizeSubmission(demoSubmission())
	if err != nil {
		return fmt.Errorf("failed to sanitize demo seat map: %w", err)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal demo seat map: %w", err)
	}

	designed := events.Event{
		ID:          uuid.New(),
		Name:        "Classical Music Evening",
		Description: "An elegant evening of classical music performed by renowned musicians.",
		Venue:       "Grand Opera House",
		DateTime:    time.Now().AddDate(0, 0, 45),
		Status:      events.EventStatusPublished,
		SeatMap:     payload,
		SeatTypes:   doc.SeatTypes,
		TypePrices: map[string]float64{
			"regular": 800.0,
			"vip":     1440.0,
		},
		CreatedBy: adminID,
	}

	if err := s.db.PostgreSQL.Create(&designed).Error; err != nil {
		return fmt.Errorf("failed to create event %s: %w", designed.Name, err)
	}
	fmt.Printf("    ✅ Created event: %s (custom map, %d seats)\n", designed.Name, doc.TotalSeats())

	// Legacy event: uniform rows x columns grid, no designer document.
	grid := make(seatmap.LegacyGrid, 4)
	for i := range grid {
		row := make([]string, 10)
		for j := range row {
			row[j] = "regular"
		}
		grid[i] = row
	}
	gridPayload, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("failed to marshal legacy grid: %w", err)
	}

	legacy := events.Event{
		ID:          uuid.New(),
		Name:        "Startup Pitch Night",
		Description: "Watch promising startups pitch their ideas to investors and industry experts.",
		Venue:       "Innovation Center",
		DateTime:    time.Now().AddDate(0, 0, 15),
		Status:      events.EventStatusPublished,
		SeatMap:     gridPayload,
		LegacyRows:  4,
		LegacyCols:  10,
		SeatTypes:   seatmap.DefaultSeatTypes(),
		TypePrices: map[string]float64{
			"regular": 500.0,
		},
		CreatedBy: adminID,
	}

	if err := s.db.PostgreSQL.Create(&legacy).Error; err != nil {
		return fmt.Errorf("failed to create event %s: %w", legacy.Name, err)
	}
	fmt.Printf("    ✅ Created event: %s (legacy %dx%d grid)\n", legacy.Name, legacy.LegacyRows, legacy.LegacyCols)

	return nil
}

func demoSubmission() *seatmap.Submission {
	regularRow := func(n int) []seatmap.Seat {
		seats := make([]seatmap.Seat, n)
		for i := range seats {
			seats[i] = seatmap.Seat{Type: "regular"}
		}
		return seats
	}

	vipRow := func(n int) []seatmap.Seat {
		seats := make([]seatmap.Seat, n)
		for i := range seats {
			seats[i] = seatmap.Seat{Type: "vip", Group: "box-circle"}
		}
		return seats
	}

	return &seatmap.Submission{
		Sections: []seatmap.Section{
			{
				Name: "Stalls",
				Rows: []seatmap.Row{
					{Seats: vipRow(8)},
					{Seats: []seatmap.Seat{}}, // walkway
					{Seats: regularRow(10)},
					{Seats: regularRow(10), Offset: 1},
				},
			},
			{
				Name: "Balcony",
				Rows: []seatmap.Row{
					{Seats: regularRow(12)},
					{Seats: regularRow(12)},
				},
			},
		},
		SeatTypes: seatmap.SeatTypes{
			{ID: "regular", Label: "Regular"},
			{ID: "vip", Label: "VIP"},
		},
		Groups: []seatmap.Group{
			{ID: "box-circle", Name: "Box Circle", Prefix: "BC"},
		},
		Settings: seatmap.Settings{SeatSize: 44},
	}
}
