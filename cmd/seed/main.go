package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"streakconnect/internal/lives"
	"streakconnect/internal/medias"
	"streakconnect/internal/members"
	"streakconnect/internal/scores"
	"streakconnect/internal/shared/config"
	"streakconnect/internal/shared/database"
	"streakconnect/internal/votes"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Streak Connect Database Seeder...")

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

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"audit_logs",
		"archives",
		"vote_responses",
		"votes",
		"medias",
		"scores",
		"tickets",
		"lives",
		"members",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	memberIDs, err := s.SeedMembers()
	if err != nil {
		return fmt.Errorf("failed to seed members: %w", err)
	}

	liveIDs, err := s.SeedLives(memberIDs["admin"])
	if err != nil {
		return fmt.Errorf("failed to seed lives: %w", err)
	}

	if err := s.SeedScores(memberIDs["admin"]); err != nil {
		return fmt.Errorf("failed to seed scores: %w", err)
	}

	if err := s.SeedMedias(memberIDs["admin"], liveIDs); err != nil {
		return fmt.Errorf("failed to seed medias: %w", err)
	}

	if err := s.SeedVotes(memberIDs["admin"]); err != nil {
		return fmt.Errorf("failed to seed votes: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedMembers creates 1 admin and 2 regular members. IDs mimic LINE user IDs.
func (s *Seeder) SeedMembers() (map[string]string, error) {
	fmt.Println("  👤 Seeding members...")

	memberIDs := make(map[string]string)
	now := time.Now()

	membersData := []struct {
		key         string
		id          string
		displayName string
		role        string
		consented   bool
	}{
		{"admin", "U0000000000000000000000000admin01", "Band Leader", "admin", true},
		{"member1", "U000000000000000000000000member01", "Sax Fan", "member", true},
		{"member2", "U000000000000000000000000member02", "Trumpet Fan", "member", false},
	}

	for _, data := range membersData {
		member := members.Member{
			ID:          data.id,
			DisplayName: data.displayName,
			Role:        members.Role(data.role),
		}
		if data.consented {
			consentAt := now
			member.ConsentAt = &consentAt
		}

		if err := s.db.PostgreSQL.Create(&member).Error; err != nil {
			return nil, fmt.Errorf("failed to create member %s: %w", data.displayName, err)
		}

		memberIDs[data.key] = member.ID
		fmt.Printf("    ✅ Created member: %s (%s)\n", member.DisplayName, member.Role)
	}

	return memberIDs, nil
}

// SeedLives creates upcoming and past lives with varied acceptance windows
func (s *Seeder) SeedLives(adminID string) ([]uuid.UUID, error) {
	fmt.Println("  🎷 Seeding lives...")

	var liveIDs []uuid.UUID
	now := time.Now()

	livesData := []struct {
		title         string
		venue         string
		daysFromNow   int
		ticketStock   int
		maxCompanions int
		advance       int
		windowOpen    bool
	}{
		{"Autumn Swing Night", "Blue Note Basement", 21, 60, 5, 2500, true},
		{"Winter Big Band Special", "City Hall Annex", 60, 120, 5, 3000, false},
		{"Jam Session Vol. 12", "Riverside Studio", 10, 30, 3, 0, true},
		{"Spring Concert (last year)", "Blue Note Basement", -300, 60, 5, 2500, false},
	}

	for _, data := range livesData {
		date := now.AddDate(0, 0, data.daysFromNow)
		live := lives.Live{
			ID:            uuid.New(),
			Title:         data.title,
			Date:          date,
			Venue:         data.venue,
			OpenTime:      "17:30",
			StartTime:     "18:00",
			Advance:       data.advance,
			Notes:         "Doors close 15 minutes after start.",
			TicketStock:   data.ticketStock,
			MaxCompanions: data.maxCompanions,
			CreatedBy:     adminID,
		}

		if data.windowOpen {
			acceptStart := now.AddDate(0, 0, -1)
			acceptEnd := date.AddDate(0, 0, -1)
			live.AcceptStart = &acceptStart
			live.AcceptEnd = &acceptEnd
		}

		if err := s.db.PostgreSQL.Create(&live).Error; err != nil {
			return nil, fmt.Errorf("failed to create live %s: %w", live.Title, err)
		}

		liveIDs = append(liveIDs, live.ID)
		fmt.Printf("    ✅ Created live: %s (stock %d)\n", live.Title, live.TicketStock)
	}

	return liveIDs, nil
}

// SeedScores creates sheet music entries with YouTube references
func (s *Seeder) SeedScores(adminID string) error {
	fmt.Println("  🎼 Seeding scores...")

	scoresData := []struct {
		title      string
		artist     string
		songKey    string
		youtubeURL string
	}{
		{"Sing Sing Sing", "Benny Goodman", "Dm", "https://www.youtube.com/watch?v=r2S1I_ien6A"},
		{"In the Mood", "Glenn Miller", "Ab", "https://youtu.be/_CI-0E_jses"},
		{"Take the A Train", "Duke Ellington", "C", "https://www.youtube.com/watch?v=cb2w2m1JmCY"},
	}

	for _, data := range scoresData {
		score := scores.Score{
			ID:         uuid.New(),
			Title:      data.title,
			Artist:     data.artist,
			SongKey:    data.songKey,
			YouTubeURL: data.youtubeURL,
			YouTubeID:  scores.ExtractYouTubeID(data.youtubeURL),
			CreatedBy:  adminID,
		}

		if err := s.db.PostgreSQL.Create(&score).Error; err != nil {
			return fmt.Errorf("failed to create score %s: %w", score.Title, err)
		}
		fmt.Printf("    ✅ Created score: %s\n", score.Title)
	}

	return nil
}

// SeedMedias creates a few media entries, some tied to a live
func (s *Seeder) SeedMedias(adminID string, liveIDs []uuid.UUID) error {
	fmt.Println("  📷 Seeding medias...")

	mediasData := []struct {
		title     string
		mediaType string
		url       string
		liveIndex int // -1 for none
	}{
		{"Full set recording", "video", "https://example.com/media/autumn-swing.mp4", 0},
		{"Rehearsal photos", "photo", "https://example.com/media/rehearsal-2026.zip", -1},
		{"Jam session audio", "audio", "https://example.com/media/jam-vol12.mp3", 2},
	}

	for _, data := range mediasData {
		media := medias.Media{
			ID:        uuid.New(),
			Title:     data.title,
			Type:      medias.MediaType(data.mediaType),
			URL:       data.url,
			CreatedBy: adminID,
		}
		if data.liveIndex >= 0 && data.liveIndex < len(liveIDs) {
			liveID := liveIDs[data.liveIndex]
			media.LiveID = &liveID
		}

		if err := s.db.PostgreSQL.Create(&media).Error; err != nil {
			return fmt.Errorf("failed to create media %s: %w", media.Title, err)
		}
		fmt.Printf("    ✅ Created media: %s (%s)\n", media.Title, media.Type)
	}

	return nil
}

// SeedVotes creates one open and one closed vote
func (s *Seeder) SeedVotes(adminID string) error {
	fmt.Println("  🗳️ Seeding votes...")

	deadline := time.Now().AddDate(0, 0, 14)

	votesData := []struct {
		title    string
		options  []string
		deadline *time.Time
		closed   bool
	}{
		{"Next rehearsal date", []string{"Sep 6 (Sat)", "Sep 7 (Sun)", "Sep 13 (Sat)"}, &deadline, false},
		{"Setlist opener for autumn", []string{"Sing Sing Sing", "In the Mood"}, nil, true},
	}

	for _, data := range votesData {
		vote := votes.Vote{
			ID:        uuid.New(),
			Title:     data.title,
			Options:   data.options,
			Deadline:  data.deadline,
			Closed:    data.closed,
			CreatedBy: adminID,
		}

		if err := s.db.PostgreSQL.Create(&vote).Error; err != nil {
			return fmt.Errorf("failed to create vote %s: %w", vote.Title, err)
		}
		fmt.Printf("    ✅ Created vote: %s (closed: %v)\n", vote.Title, vote.Closed)
	}

	return nil
}
