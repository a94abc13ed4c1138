package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"streakconnect/internal/shared/config"
)

// LinePusher sends push messages to a member over the LINE Messaging API.
type LinePusher interface {
	PushText(ctx context.Context, memberID, text string) error
}

type linePusher struct {
	pushEndpoint string
	token        string
	httpClient   *http.Client
}

func NewLinePusher(cfg config.LineConfig) LinePusher {
	return &linePusher{
		pushEndpoint: cfg.PushEndpoint,
		token:        cfg.MessagingToken,
		httpClient:   &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

type linePushRequest struct {
	To       string            `json:"to"`
	Messages []linePushMessage `json:"messages"`
}

type linePushMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (p *linePusher) PushText(ctx context.Context, memberID, text string) error {
	body, err := json.Marshal(linePushRequest{
		To:       memberID,
		Messages: []linePushMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.pushEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call LINE push API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("LINE push API returned %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// messageFor renders the push text for a ticket event.
func messageFor(event *TicketEvent) string {
	switch event.Kind {
	case TicketEventConfirmed:
		title := event.LiveTitle
		if title == "" {
			title = "the upcoming live"
		}
		return fmt.Sprintf(
			"Your reservation for %s is confirmed.\nReservation No: %s\nSeats: %d\nSee you there!",
			title, event.ReservationNo, event.TotalCount,
		)
	case TicketEventCancelled:
		return fmt.Sprintf(
			"Your reservation has been cancelled. %d seat(s) released.\nYou can reserve again while the window is open.",
			event.Released,
		)
	default:
		return fmt.Sprintf("Reservation update at %s", event.OccurredAt.Format(time.RFC3339))
	}
}
