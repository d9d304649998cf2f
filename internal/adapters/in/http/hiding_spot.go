package http

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"lastmile/internal/adapters/out/photostore"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
	"lastmile/internal/generated/servers"
	"lastmile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var dataURIPattern = regexp.MustCompile(`^data:([A-Za-z-+/]+);base64,(.+)$`)

type hidingSpotSubmission struct {
	photo       ports.Photo
	location    kernel.Coordinates
	description string
}

func readHidingSpotSubmission(ctx echo.Context) (hidingSpotSubmission, error) {
	mediaType, _, _ := mime.ParseMediaType(ctx.Request().Header.Get(echo.HeaderContentType))
	if mediaType == echo.MIMEMultipartForm {
		return readMultipartSubmission(ctx)
	}

	var body servers.HidingSpotSubmission
	if err := ctx.Bind(&body); err != nil {
		return hidingSpotSubmission{}, errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	photo, err := decodeDataURI(body.Photo)
	if err != nil {
		return hidingSpotSubmission{}, err
	}
	location, err := kernel.NewCoordinates(body.Latitude, body.Longitude)
	if err != nil {
		return hidingSpotSubmission{}, err
	}

	return hidingSpotSubmission{photo: photo, location: location, description: deref(body.Description)}, nil
}

func readMultipartSubmission(ctx echo.Context) (hidingSpotSubmission, error) {
	header, err := ctx.FormFile("photo")
	if err != nil {
		return hidingSpotSubmission{}, errs.NewValueIsRequiredErrorWithCause("photo", err)
	}
	if header.Size > photostore.MaxPhotoBytes {
		return hidingSpotSubmission{}, fmt.Errorf("%w: photo is %d bytes, maximum is %d",
			ports.ErrPhotoRejected, header.Size, photostore.MaxPhotoBytes)
	}

	file, err := header.Open()
	if err != nil {
		return hidingSpotSubmission{}, errs.NewValueIsInvalidErrorWithCause("photo", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, photostore.MaxPhotoBytes+1))
	if err != nil {
		return hidingSpotSubmission{}, errs.NewValueIsInvalidErrorWithCause("photo", err)
	}

	contentType := header.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = http.DetectContentType(data)
	}

	latitude, err := parseFormFloat(ctx, "latitude")
	if err != nil {
		return hidingSpotSubmission{}, err
	}
	longitude, err := parseFormFloat(ctx, "longitude")
	if err != nil {
		return hidingSpotSubmission{}, err
	}
	location, err := kernel.NewCoordinates(latitude, longitude)
	if err != nil {
		return hidingSpotSubmission{}, err
	}

	return hidingSpotSubmission{
		photo:       ports.Photo{ContentType: contentType, Data: data},
		location:    location,
		description: ctx.FormValue("description"),
	}, nil
}

// decodeDataURI accepts data:<type>;base64,<payload>. Content checks are
// left to the photo store.
func decodeDataURI(uri string) (ports.Photo, error) {
	if strings.TrimSpace(uri) == "" {
		return ports.Photo{}, errs.NewValueIsRequiredError("photo")
	}

	match := dataURIPattern.FindStringSubmatch(uri)
	if match == nil {
		return ports.Photo{}, errs.NewValueIsInvalidErrorWithCause("photo",
			fmt.Errorf("expected a base64 data URI"))
	}

	data, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		return ports.Photo{}, errs.NewValueIsInvalidErrorWithCause("photo", err)
	}

	return ports.Photo{ContentType: match[1], Data: data}, nil
}

func parseFormFloat(ctx echo.Context, name string) (float64, error) {
	raw := strings.TrimSpace(ctx.FormValue(name))
	if raw == "" {
		return 0, errs.NewValueIsRequiredError(name)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}
