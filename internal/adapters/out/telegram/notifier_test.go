package telegram_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"lastmile/internal/adapters/out/telegram"
	"lastmile/internal/core/domain/model/client"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/product"
	"lastmile/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123:secret"

type botCall struct {
	Method      string
	Params      map[string]string
	ContentType string
	FileName    string
	FileData    string
}

type fakeBot struct {
	mu     sync.Mutex
	calls  []botCall
	failOn string
}

func (b *fakeBot) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, ok := strings.CutPrefix(r.URL.Path, "/bot"+testToken+"/")
		if !assert.True(t, ok, r.URL.Path) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		call := botCall{Method: method, Params: map[string]string{}}
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		call.ContentType = mediaType
		if mediaType == "multipart/form-data" {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			f, header, err := r.FormFile("photo")
			require.NoError(t, err)
			data, _ := io.ReadAll(f)
			call.FileName, call.FileData = header.Filename, string(data)
		} else {
			require.NoError(t, r.ParseForm())
		}
		for key := range r.PostForm {
			call.Params[key] = r.PostForm.Get(key)
		}

		b.mu.Lock()
		b.calls = append(b.calls, call)
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if method == b.failOn {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	})
}

func parseFloat(t *testing.T, s string) float64 {
	t.Helper()
	f, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	return f
}

type stubPhotos map[string]string

func (s stubPhotos) Open(url string) (io.ReadCloser, error) {
	content, ok := s[url]
	if !ok {
		return nil, errors.New("no such photo")
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func newNotifier(t *testing.T, photos telegram.PhotoOpener) (*telegram.Notifier, *fakeBot) {
	t.Helper()
	bot := &fakeBot{}
	srv := httptest.NewServer(bot.handler(t))
	t.Cleanup(srv.Close)

	n := telegram.NewNotifier(telegram.Config{APIURL: srv.URL, Token: testToken, Timeout: time.Second},
		photos, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return n, bot
}

func newNotifiedClient(t *testing.T, chatID string) *client.Client {
	t.Helper()
	c, err := client.NewClient(kernel.NewUUID(), "Jane Doe", "+33600000000", "", chatID)
	require.NoError(t, err)
	return c
}

func newNoticeDelivery(t *testing.T, status delivery.Status, spot *delivery.HidingSpot) (*delivery.Delivery, map[kernel.UUID]*product.Product) {
	t.Helper()
	milk, err := product.NewProduct(kernel.NewUUID(), "Milk", "", "dairy", "l")
	require.NoError(t, err)
	item, err := delivery.NewItem(milk.ID(), 2)
	require.NoError(t, err)
	details, err := delivery.NewDetails("Jane Doe", "+33600000000", "1 rue de Rivoli, Paris")
	require.NoError(t, err)

	createdAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	driverID := kernel.NewUUID()
	var completedAt *time.Time
	if status == delivery.Delivered {
		at := createdAt.Add(time.Hour)
		completedAt = &at
	}
	d, err := delivery.RestoreDelivery(kernel.NewUUID(), details, []delivery.Item{item}, &driverID, status,
		createdAt, createdAt.Add(2*time.Hour), createdAt.Add(30*time.Minute), completedAt, spot)
	require.NoError(t, err)
	return d, map[kernel.UUID]*product.Product{milk.ID(): milk}
}

func newSpot(t *testing.T, photoURL, description string) *delivery.HidingSpot {
	t.Helper()
	loc, err := kernel.NewCoordinates(48.857, 2.3522)
	require.NoError(t, err)
	spot, err := delivery.NewHidingSpot(kernel.NewUUID(), photoURL, loc, description, 44.47, time.Now().UTC())
	require.NoError(t, err)
	return spot
}

func TestNotifier_Notify_Created_SendsETA(t *testing.T) {
	n, bot := newNotifier(t, nil)
	d, products := newNoticeDelivery(t, delivery.Pending, nil)

	err := n.Notify(t.Context(), ports.DeliveryNotice{
		Event:    delivery.Event{Type: delivery.EventCreated, Status: delivery.Pending},
		Delivery: d,
		Client:   newNotifiedClient(t, "42"),
		Products: products,
	})

	require.NoError(t, err)
	require.Len(t, bot.calls, 1)
	call := bot.calls[0]
	assert.Equal(t, "sendMessage", call.Method)
	assert.Equal(t, "42", call.Params["chat_id"])
	assert.Equal(t, "Markdown", call.Params["parse_mode"])
	text := call.Params["text"]
	assert.Contains(t, text, "2x Milk")
	assert.Contains(t, text, "1 rue de Rivoli, Paris")
	assert.Contains(t, text, "14/03/2026 11:00")
}

func TestNotifier_Notify_StatusChanged_InTransit_IncludesDriverAndETA(t *testing.T) {
	n, bot := newNotifier(t, nil)
	d, products := newNoticeDelivery(t, delivery.InTransit, nil)

	err := n.Notify(t.Context(), ports.DeliveryNotice{
		Event:      delivery.Event{Type: delivery.EventStatusChanged, Status: delivery.InTransit},
		Delivery:   d,
		Client:     newNotifiedClient(t, "42"),
		DriverName: "Marc_the_driver",
		Products:   products,
	})

	require.NoError(t, err)
	require.Len(t, bot.calls, 1)
	text := bot.calls[0].Params["text"]
	assert.Contains(t, text, "On the way")
	assert.Contains(t, text, `Marc\_the\_driver`)
	assert.Contains(t, text, "ETA: 14/03/2026 11:00")
}

func TestNotifier_Notify_DeliveredWithSpot_SendsReportPhotoAndLocation(t *testing.T) {
	photoURL := "/uploads/hiding-spots/spot.jpg"
	n, bot := newNotifier(t, stubPhotos{photoURL: "jpeg-bytes"})
	d, products := newNoticeDelivery(t, delivery.Delivered, newSpot(t, photoURL, "under the doormat"))

	err := n.Notify(t.Context(), ports.DeliveryNotice{
		Event:    delivery.Event{Type: delivery.EventStatusChanged, Status: delivery.Delivered},
		Delivery: d,
		Client:   newNotifiedClient(t, "42"),
		Products: products,
	})

	require.NoError(t, err)
	require.Len(t, bot.calls, 4)
	assert.Equal(t, []string{"sendMessage", "sendPhoto", "sendLocation", "sendMessage"},
		[]string{bot.calls[0].Method, bot.calls[1].Method, bot.calls[2].Method, bot.calls[3].Method})

	report := bot.calls[0].Params["text"]
	assert.Contains(t, report, "Distance from the address: 44.5m")
	assert.Contains(t, report, "under the doormat")

	assert.Equal(t, "multipart/form-data", bot.calls[1].ContentType)
	assert.Equal(t, "spot.jpg", bot.calls[1].FileName)
	assert.Equal(t, "jpeg-bytes", bot.calls[1].FileData)
	assert.Equal(t, "42", bot.calls[1].Params["chat_id"])
	assert.Equal(t, "Hiding spot photo", bot.calls[1].Params["caption"])

	assert.InDelta(t, 48.857, parseFloat(t, bot.calls[2].Params["latitude"]), 1e-6)
	assert.InDelta(t, 2.3522, parseFloat(t, bot.calls[2].Params["longitude"]), 1e-6)
}

func TestNotifier_Notify_RemotePhoto_IsSentByURL(t *testing.T) {
	n, bot := newNotifier(t, nil)
	d, products := newNoticeDelivery(t, delivery.Delivered, newSpot(t, "https://cdn.example.com/spot.jpg", ""))

	err := n.Notify(t.Context(), ports.DeliveryNotice{
		Event:    delivery.Event{Type: delivery.EventStatusChanged, Status: delivery.Delivered},
		Delivery: d,
		Client:   newNotifiedClient(t, "42"),
		Products: products,
	})

	require.NoError(t, err)
	require.Len(t, bot.calls, 4)
	assert.Equal(t, "application/x-www-form-urlencoded", bot.calls[1].ContentType)
	assert.Equal(t, "https://cdn.example.com/spot.jpg", bot.calls[1].Params["photo"])
	assert.Contains(t, bot.calls[0].Params["text"], "See the photo and location below.")
}

func TestNotifier_Notify_LocalPhotoWithPublicBaseURL_IsSentByURL(t *testing.T) {
	bot := &fakeBot{}
	srv := httptest.NewServer(bot.handler(t))
	t.Cleanup(srv.Close)
	n := telegram.NewNotifier(telegram.Config{
		APIURL:        srv.URL,
		Token:         testToken,
		PublicBaseURL: "https://lastmile.example.com/",
		Timeout:       time.Second,
	}, stubPhotos{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	d, products := newNoticeDelivery(t, delivery.Delivered, newSpot(t, "/uploads/hiding-spots/spot.jpg", ""))

	err := n.Notify(t.Context(), ports.DeliveryNotice{
		Event:    delivery.Event{Type: delivery.EventStatusChanged, Status: delivery.Delivered},
		Delivery: d,
		Client:   newNotifiedClient(t, "42"),
		Products: products,
	})

	require.NoError(t, err)
	require.Len(t, bot.calls, 4)
	assert.Equal(t, "https://lastmile.example.com/uploads/hiding-spots/spot.jpg", bot.calls[1].Params["photo"])
}

func TestNotifier_Notify_MissingLocalPhoto_StillSendsLocation(t *testing.T) {
	n, bot := newNotifier(t, stubPhotos{})
	d, products := newNoticeDelivery(t, delivery.Delivered, newSpot(t, "/uploads/hiding-spots/gone.jpg", ""))

	err := n.Notify(t.Context(), ports.DeliveryNotice{
		Event:    delivery.Event{Type: delivery.EventStatusChanged, Status: delivery.Delivered},
		Delivery: d,
		Client:   newNotifiedClient(t, "42"),
		Products: products,
	})

	require.NoError(t, err)
	require.Len(t, bot.calls, 3)
	assert.Equal(t, "sendLocation", bot.calls[1].Method)
}

func TestNotifier_Notify_ClientWithoutChat_IsSkipped(t *testing.T) {
	n, bot := newNotifier(t, nil)
	d, products := newNoticeDelivery(t, delivery.Pending, nil)

	for _, c := range []*client.Client{nil, newNotifiedClient(t, "")} {
		err := n.Notify(t.Context(), ports.DeliveryNotice{
			Event:    delivery.Event{Type: delivery.EventCreated},
			Delivery: d,
			Client:   c,
			Products: products,
		})
		require.NoError(t, err)
	}
	assert.Empty(t, bot.calls)
}

func TestNotifier_Notify_APIError(t *testing.T) {
	n, bot := newNotifier(t, nil)
	bot.failOn = "sendMessage"
	d, products := newNoticeDelivery(t, delivery.Pending, nil)

	err := n.Notify(t.Context(), ports.DeliveryNotice{
		Event:    delivery.Event{Type: delivery.EventCreated},
		Delivery: d,
		Client:   newNotifiedClient(t, "42"),
		Products: products,
	})

	require.ErrorIs(t, err, telegram.ErrBotAPI)
	assert.Contains(t, err.Error(), "chat not found")
	assert.NotContains(t, err.Error(), testToken)
}

func TestNotifier_Notify_ChannelUsername_IsUsedAsChatID(t *testing.T) {
	n, bot := newNotifier(t, nil)
	d, products := newNoticeDelivery(t, delivery.Pending, nil)

	err := n.Notify(t.Context(), ports.DeliveryNotice{
		Event:    delivery.Event{Type: delivery.EventCreated},
		Delivery: d,
		Client:   newNotifiedClient(t, "@lastmile_clients"),
		Products: products,
	})

	require.NoError(t, err)
	require.Len(t, bot.calls, 1)
	assert.Equal(t, "@lastmile_clients", bot.calls[0].Params["chat_id"])
}

func TestNotifier_Notify_UnreachableAPI_KeepsTokenOutOfError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	n := telegram.NewNotifier(telegram.Config{APIURL: srv.URL, Token: testToken, Timeout: time.Second},
		nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	d, products := newNoticeDelivery(t, delivery.Pending, nil)

	err := n.Notify(t.Context(), ports.DeliveryNotice{
		Event:    delivery.Event{Type: delivery.EventCreated},
		Delivery: d,
		Client:   newNotifiedClient(t, "42"),
		Products: products,
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, telegram.ErrBotAPI)
	assert.Contains(t, err.Error(), "telegram sendMessage")
	assert.NotContains(t, err.Error(), testToken)
}

func TestNotifier_Notify_CancelledContext_SendsNothing(t *testing.T) {
	n, bot := newNotifier(t, nil)
	d, products := newNoticeDelivery(t, delivery.Pending, nil)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := n.Notify(ctx, ports.DeliveryNotice{
		Event:    delivery.Event{Type: delivery.EventCreated},
		Delivery: d,
		Client:   newNotifiedClient(t, "42"),
		Products: products,
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, bot.calls)
}
