// Package telegram notifies clients about their deliveries through the
// Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/ports"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// PhotoOpener reads a locally stored hiding-spot photo by its public URL.
type PhotoOpener interface {
	Open(url string) (io.ReadCloser, error)
}

type Config struct {
	APIURL string
	Token  string

	// PublicBaseURL makes locally stored photos reachable by Telegram. When
	// set, relative photo URLs are sent as links instead of uploaded.
	PublicBaseURL string

	// Location used to render times in messages. Defaults to UTC.
	Location *time.Location
	Timeout  time.Duration
}

var _ ports.Notifier = (*Notifier)(nil)

type Notifier struct {
	api           *bot
	photos        PhotoOpener
	publicBaseURL string
	loc           *time.Location
	logger        *slog.Logger
}

func NewNotifier(cfg Config, photos PhotoOpener, logger *slog.Logger) *Notifier {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		api:           newBot(cfg.APIURL, cfg.Token, &http.Client{Timeout: timeout}),
		photos:        photos,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		loc:           loc,
		logger:        logger,
	}
}

// Notify sends the message matching the notice event. Clients without a
// Telegram chat are skipped.
func (n *Notifier) Notify(ctx context.Context, notice ports.DeliveryNotice) error {
	if notice.Client == nil || !notice.Client.CanBeNotified() || notice.Delivery == nil {
		return nil
	}
	chatID := notice.Client.TelegramChatID()

	switch {
	case notice.Event.Type == delivery.EventCreated:
		return n.api.sendMessage(ctx, chatID, n.etaMessage(notice), true)
	case notice.Event.Status == delivery.Delivered && notice.Delivery.HidingSpot() != nil:
		return n.sendReport(ctx, chatID, notice)
	default:
		return n.api.sendMessage(ctx, chatID, n.statusMessage(notice), true)
	}
}

func (n *Notifier) sendReport(ctx context.Context, chatID string, notice ports.DeliveryNotice) error {
	spot := notice.Delivery.HidingSpot()

	if err := n.api.sendMessage(ctx, chatID, reportMessage(notice), true); err != nil {
		return err
	}
	if err := n.sendPhoto(ctx, chatID, spot.PhotoURL()); err != nil {
		return err
	}
	loc := spot.Location()
	if err := n.api.sendLocation(ctx, chatID, loc.Latitude(), loc.Longitude()); err != nil {
		return err
	}
	return n.api.sendMessage(ctx, chatID, "Thank you for using our service!", false)
}

func (n *Notifier) sendPhoto(ctx context.Context, chatID, photoURL string) error {
	const caption = "Hiding spot photo"

	if strings.HasPrefix(photoURL, "http://") || strings.HasPrefix(photoURL, "https://") {
		return n.api.sendPhoto(ctx, chatID, tgbotapi.FileURL(photoURL), caption)
	}
	if n.publicBaseURL != "" {
		return n.api.sendPhoto(ctx, chatID, tgbotapi.FileURL(n.publicBaseURL+"/"+strings.TrimLeft(photoURL, "/")), caption)
	}
	if n.photos == nil {
		return nil
	}
	rc, err := n.photos.Open(photoURL)
	if err != nil {
		n.logger.Warn("hiding spot photo unavailable, report sent without it",
			"photo_url", photoURL,
			"error", err,
		)
		return nil
	}
	defer rc.Close()
	return n.api.sendPhoto(ctx, chatID, tgbotapi.FileReader{Name: path.Base(photoURL), Reader: rc}, caption)
}

func (n *Notifier) etaMessage(notice ports.DeliveryNotice) string {
	var b strings.Builder
	b.WriteString("*Delivery confirmed!*\n\n")
	fmt.Fprintf(&b, "Products: %s\n", escapeMarkdown(itemsSummary(notice)))
	fmt.Fprintf(&b, "Address: %s\n", escapeMarkdown(notice.Delivery.Details().DeliveryAddress()))
	fmt.Fprintf(&b, "*Estimated delivery: %s*\n\n", n.formatTime(notice.Delivery.EstimatedDeliveryTime()))
	b.WriteString("You will be notified when the driver is on the way.")
	return b.String()
}

func (n *Notifier) statusMessage(notice ports.DeliveryNotice) string {
	d := notice.Delivery
	status := notice.Event.Status
	if status == delivery.Unknown {
		status = d.Status()
	}

	var b strings.Builder
	b.WriteString("*Delivery update*\n\n")
	fmt.Fprintf(&b, "Status: *%s*\n", statusText(status))
	fmt.Fprintf(&b, "Address: %s\n", escapeMarkdown(d.Details().DeliveryAddress()))
	if notice.DriverName != "" {
		fmt.Fprintf(&b, "Driver: %s\n", escapeMarkdown(notice.DriverName))
	}
	if status == delivery.InTransit {
		fmt.Fprintf(&b, "ETA: %s\n", n.formatTime(d.EstimatedDeliveryTime()))
	}
	return b.String()
}

func reportMessage(notice ports.DeliveryNotice) string {
	spot := notice.Delivery.HidingSpot()
	description := spot.Description()
	if description == "" {
		description = "See the photo and location below."
	}

	var b strings.Builder
	b.WriteString("*Delivery completed!*\n\n")
	fmt.Fprintf(&b, "Products: %s\n", escapeMarkdown(itemsSummary(notice)))
	fmt.Fprintf(&b, "Address: %s\n", escapeMarkdown(notice.Delivery.Details().DeliveryAddress()))
	fmt.Fprintf(&b, "Distance from the address: %.1fm\n\n", spot.DistanceFromAddress())
	b.WriteString(escapeMarkdown(description))
	return b.String()
}

func itemsSummary(notice ports.DeliveryNotice) string {
	items := notice.Delivery.Items()
	parts := make([]string, 0, len(items))
	for _, item := range items {
		name := item.ProductID().String()
		if p, ok := notice.Products[item.ProductID()]; ok && p != nil {
			name = p.Name()
		}
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity(), name))
	}
	return strings.Join(parts, ", ")
}

func (n *Notifier) formatTime(t time.Time) string {
	if t.IsZero() {
		return "to be determined"
	}
	return t.In(n.loc).Format("02/01/2006 15:04")
}

func statusText(s delivery.Status) string {
	switch s {
	case delivery.Pending:
		return "Waiting for a driver"
	case delivery.Assigned:
		return "Assigned to a driver"
	case delivery.PickingUp:
		return "Driver is picking up your order"
	case delivery.InTransit:
		return "On the way"
	case delivery.Hidden:
		return "Dropped at the hiding spot"
	case delivery.Delivered:
		return "Delivered"
	case delivery.Cancelled:
		return "Cancelled"
	case delivery.Problem:
		return "Problem reported"
	default:
		return s.String()
	}
}

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
