package auditlog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streakconnect/internal/shared/middleware"
)

// actionsByRoute maps mutating route patterns to audit actions. Routes not
// listed here are not recorded.
var actionsByRoute = map[string]string{
	"POST /auth/line/callback":          ActionLogin,
	"POST /members/me/consent":          ActionConsent,
	"PUT /admin/members/:memberId/role": ActionRoleChange,
	"DELETE /admin/members/:memberId":   ActionMemberDelete,
	"POST /admin/lives":                 ActionLiveCreate,
	"PUT /admin/lives/:liveId":          ActionLiveUpdate,
	"DELETE /admin/lives/:liveId":       ActionLiveDelete,
	"POST /admin/lives/:liveId/archive": ActionLiveArchive,
	"PUT /lives/:liveId/tickets/me":     ActionReservationUpsert,
	"DELETE /lives/:liveId/tickets/me":  ActionReservationCancel,
	"POST /admin/votes":                 ActionVoteCreate,
	"POST /admin/votes/:voteId/close":   ActionVoteClose,
	"DELETE /admin/votes/:voteId":       ActionVoteDelete,
}

// Middleware records successful mutating requests after the handler runs.
// The member ID comes from the auth middleware further down the chain, so
// recording happens post-handler.
func Middleware(service Service, basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		route := c.FullPath()
		if len(route) >= len(basePath) && route[:len(basePath)] == basePath {
			route = route[len(basePath):]
		}

		action, ok := actionsByRoute[c.Request.Method+" "+route]
		if !ok {
			return
		}

		memberID, _ := middleware.MemberID(c)

		target := c.Param("liveId")
		if target == "" {
			target = c.Param("voteId")
		}
		if target == "" {
			target = c.Param("memberId")
		}

		service.Record(c.Request.Context(), memberID, action, target, c.Request.URL.Path, c.ClientIP())
	}
}
