// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"streakconnect/internal/announcements"
	"streakconnect/internal/archives"
	"streakconnect/internal/auditlog"
	"streakconnect/internal/auth"
	"streakconnect/internal/lives"
	"streakconnect/internal/medias"
	"streakconnect/internal/members"
	"streakconnect/internal/scores"
	"streakconnect/internal/shared/config"
	"streakconnect/internal/shared/database"
	"streakconnect/internal/tickets"
	"streakconnect/internal/votes"
	"streakconnect/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service

	// Shared across route groups for dependency injection
	memberService  members.Service
	liveRepo       lives.Repository
	ticketRepo     tickets.Repository
	voteRepo       votes.Repository
	auditService   auditlog.Service
	archiveService archives.Service

	// Set before SetupRoutes when the Kafka pipeline is enabled
	ticketPublisher tickets.NotificationPublisher
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	r := &Router{
		config: cfg,
		db:     db,
	}
	if db.Redis != nil {
		r.cacheService = cache.NewService(db.GetRedis())
	}
	return r
}

// SetTicketPublisher injects the reservation event publisher. Must be called
// before SetupRoutes.
func (r *Router) SetTicketPublisher(publisher tickets.NotificationPublisher) {
	r.ticketPublisher = publisher
}

// TicketRepository exposes the ticket repository so the notification consumer
// can mark tickets as notified.
func (r *Router) TicketRepository() tickets.Repository {
	if r.ticketRepo == nil {
		r.ticketRepo = tickets.NewRepository(r.db.GetPostgreSQL())
	}
	return r.ticketRepo
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	// Audit trail first so it wraps every mutating route below
	auditRepo := auditlog.NewRepository(r.db.GetPostgreSQL())
	r.auditService = auditlog.NewService(auditRepo)

	// Archive service before the domain groups: scores, votes and tickets
	// snapshot deleted rows through it
	archiveRepo := archives.NewRepository(r.db.GetPostgreSQL())
	r.archiveService = archives.NewService(archiveRepo)
	if r.cacheService != nil {
		r.archiveService.SetCacheService(r.cacheService)
	}

	api := engine.Group(r.config.GetAPIBasePath())
	api.Use(auditlog.Middleware(r.auditService, r.config.GetAPIBasePath()))
	{
		// Members first: auth depends on the member service
		r.setupMemberRoutes(api)
		r.setupAuthRoutes(api)

		r.setupLiveRoutes(api)
		r.setupTicketRoutes(api)
		r.setupScoreRoutes(api)
		r.setupMediaRoutes(api)
		r.setupVoteRoutes(api)
		r.setupAnnouncementRoutes(api)
		r.setupArchiveRoutes(api)
		r.setupAuditLogRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "streakconnect-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "streakconnect-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupMemberRoutes(rg *gin.RouterGroup) {
	memberRepo := members.NewRepository(r.db.GetPostgreSQL())
	r.memberService = members.NewService(memberRepo)
	memberController := members.NewController(r.memberService)

	members.SetupMemberRoutes(rg, memberController)
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	lineClient := auth.NewLineClient(r.config.Line)
	authService := auth.NewService(lineClient, r.memberService, r.cacheService, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

func (r *Router) setupLiveRoutes(rg *gin.RouterGroup) {
	r.liveRepo = lives.NewRepository(r.db.GetPostgreSQL())
	liveService := lives.NewService(r.liveRepo)
	if r.cacheService != nil {
		liveService.SetCacheService(r.cacheService)
	}
	liveService.SetArchiver(r.archiveService)
	liveController := lives.NewController(liveService)

	lives.SetupLiveRoutes(rg, liveController)
}

func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	ticketService := tickets.NewService(r.TicketRepository(), r.liveRepo, r.config.Tickets.StrictCancel)
	if r.cacheService != nil {
		ticketService.SetCacheService(r.cacheService)
	}
	if r.db.Redis != nil {
		ticketService.SetStockGauge(tickets.NewStockGauge(r.db.GetRedis(), r.config.Redis.StockGaugeTTL))
	}
	if r.ticketPublisher != nil {
		ticketService.SetPublisher(r.ticketPublisher)
	}
	ticketService.SetArchiver(r.archiveService)
	ticketController := tickets.NewController(ticketService)

	tickets.SetupTicketRoutes(rg, ticketController)
}

func (r *Router) setupScoreRoutes(rg *gin.RouterGroup) {
	scoreRepo := scores.NewRepository(r.db.GetPostgreSQL())
	scoreService := scores.NewService(scoreRepo)
	if r.cacheService != nil {
		scoreService.SetCacheService(r.cacheService)
	}
	scoreService.SetArchiver(r.archiveService)
	scoreController := scores.NewController(scoreService)

	scores.SetupScoreRoutes(rg, scoreController)
}

func (r *Router) setupMediaRoutes(rg *gin.RouterGroup) {
	mediaRepo := medias.NewRepository(r.db.GetPostgreSQL())
	mediaService := medias.NewService(mediaRepo)
	if r.cacheService != nil {
		mediaService.SetCacheService(r.cacheService)
	}
	mediaController := medias.NewController(mediaService)

	medias.SetupMediaRoutes(rg, mediaController)
}

func (r *Router) setupVoteRoutes(rg *gin.RouterGroup) {
	r.voteRepo = votes.NewRepository(r.db.GetPostgreSQL())
	voteService := votes.NewService(r.voteRepo)
	voteService.SetArchiver(r.archiveService)
	voteController := votes.NewController(voteService)

	votes.SetupVoteRoutes(rg, voteController)
}

func (r *Router) setupAnnouncementRoutes(rg *gin.RouterGroup) {
	announcementService := announcements.NewService(r.liveRepo, r.TicketRepository(), r.voteRepo)
	if r.cacheService != nil {
		announcementService.SetCacheService(r.cacheService)
	}
	announcementController := announcements.NewController(announcementService)

	announcements.SetupAnnouncementRoutes(rg, announcementController)
}

func (r *Router) setupArchiveRoutes(rg *gin.RouterGroup) {
	archiveController := archives.NewController(r.archiveService)

	archives.SetupArchiveRoutes(rg, archiveController)
}

func (r *Router) setupAuditLogRoutes(rg *gin.RouterGroup) {
	auditController := auditlog.NewController(r.auditService)

	auditlog.SetupAuditLogRoutes(rg, auditController)
}
