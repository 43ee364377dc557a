package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	colorGreen  = 0x2ECC71 // change 20%+
	colorYellow = 0xF1C40F // change 10-19%
	colorBlue   = 0x0A85EA // smaller drops and offer-only alerts
)

// DiscordNotifier implements Notifier via Discord webhook. It posts to an
// operator channel, not to the end user.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Thumbnail   *discordThumbnail   `json:"thumbnail,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordThumbnail struct {
	URL string `json:"url"`
}

// Send posts the alert as a single Discord embed.
func (d *DiscordNotifier) Send(ctx context.Context, alert *AlertPayload) error {
	return d.post(ctx, discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(alert)},
	})
}

func buildEmbed(alert *AlertPayload) discordEmbed {
	title := "Price Drop: " + alert.ItemName
	if !alert.PriceDropped && alert.OfferImproved {
		title = "Better Offer: " + alert.ItemName
	}

	embed := discordEmbed{
		Title:       title,
		URL:         alert.SourceURL,
		Color:       changeColor(alert),
		Description: fmt.Sprintf("Tracked by %s in %s", alert.UserEmail, alert.Region),
		Fields: []discordEmbedField{
			{Name: "Current", Value: formatRupees(alert.CurrentPrice), Inline: true},
			{Name: "Target", Value: formatRupees(alert.TargetPrice), Inline: true},
			{Name: "Previous", Value: formatRupees(alert.PreviousPrice), Inline: true},
			{Name: "Change", Value: fmt.Sprintf("%d%%", alert.ChangePercent), Inline: true},
			{Name: "Discount", Value: fmt.Sprintf("%.0f%%", alert.DiscountPercent), Inline: true},
			{Name: "Alerts Left", Value: fmt.Sprintf("%d", alert.EmailsRemaining), Inline: true},
		},
	}

	if alert.ImageURL != "" {
		embed.Thumbnail = &discordThumbnail{URL: alert.ImageURL}
	}

	return embed
}

func changeColor(alert *AlertPayload) int {
	switch {
	case !alert.PriceDropped:
		return colorBlue
	case alert.ChangePercent >= 20:
		return colorGreen
	case alert.ChangePercent >= 10:
		return colorYellow
	default:
		return colorBlue
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
