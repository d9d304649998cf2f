package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const DefaultAPIURL = "https://api.telegram.org"

// ErrBotAPI is returned when the Bot API answers with ok=false.
var ErrBotAPI = errors.New("telegram bot api error")

// requestDoer binds every Bot API request to the caller's context and keeps
// the token, which is part of the request URL, out of transport errors.
type requestDoer struct {
	ctx    context.Context
	client *http.Client
}

func (d requestDoer) Do(req *http.Request) (*http.Response, error) {
	resp, err := d.client.Do(req.WithContext(d.ctx))
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, urlErr.Err
		}
		return nil, errors.New("request failed")
	}
	return resp, nil
}

type bot struct {
	token    string
	endpoint string
	client   *http.Client
}

func newBot(apiURL, token string, client *http.Client) *bot {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &bot{
		token:    token,
		endpoint: strings.TrimRight(apiURL, "/") + "/bot%s/%s",
		client:   client,
	}
}

// api is built per request around ctx. NewBotAPIWithClient is not used
// because it calls getMe.
func (b *bot) api(ctx context.Context) *tgbotapi.BotAPI {
	api := &tgbotapi.BotAPI{
		Token:  b.token,
		Client: requestDoer{ctx: ctx, client: b.client},
	}
	api.SetAPIEndpoint(b.endpoint)
	return api
}

func (b *bot) send(ctx context.Context, method string, c tgbotapi.Chattable) error {
	if _, err := b.api(ctx).Request(c); err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%w: %s: %d %s", ErrBotAPI, method, apiErr.Code, strings.TrimSpace(apiErr.Message))
		}
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	return nil
}

func (b *bot) sendMessage(ctx context.Context, chatID, text string, markdown bool) error {
	msg := tgbotapi.MessageConfig{BaseChat: chat(chatID), Text: text}
	if markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	return b.send(ctx, "sendMessage", msg)
}

func (b *bot) sendPhoto(ctx context.Context, chatID string, photo tgbotapi.RequestFileData, caption string) error {
	return b.send(ctx, "sendPhoto", tgbotapi.PhotoConfig{
		BaseFile: tgbotapi.BaseFile{BaseChat: chat(chatID), File: photo},
		Caption:  caption,
	})
}

func (b *bot) sendLocation(ctx context.Context, chatID string, latitude, longitude float64) error {
	return b.send(ctx, "sendLocation", tgbotapi.LocationConfig{
		BaseChat:  chat(chatID),
		Latitude:  latitude,
		Longitude: longitude,
	})
}

// chat addresses numeric chat ids directly and anything else, such as
// @channel names, by username.
func chat(chatID string) tgbotapi.BaseChat {
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil && id != 0 {
		return tgbotapi.BaseChat{ChatID: id}
	}
	return tgbotapi.BaseChat{ChannelUsername: chatID}
}
