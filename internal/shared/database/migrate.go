package database

import (
	"streakconnect/internal/archives"
	"streakconnect/internal/auditlog"
	"streakconnect/internal/lives"
	"streakconnect/internal/medias"
	"streakconnect/internal/members"
	"streakconnect/internal/scores"
	"streakconnect/internal/tickets"
	"streakconnect/internal/votes"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&members.Member{},
		&lives.Live{},
		&tickets.Ticket{},
		&scores.Score{},
		&medias.Media{},
		&votes.Vote{},
		&votes.Response{},
		&archives.Archive{},
		&auditlog.Entry{},
	)
}
