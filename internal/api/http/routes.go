package httpapi

import (
	"bytes"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/travel-weather/internal/geo"
	"github.com/i474232898/travel-weather/internal/route"
	"github.com/i474232898/travel-weather/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. Departure times
// without an explicit offset are read in loc.
func RegisterRoutes(app *fiber.App, service *weather.Service, loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}

	v1 := app.Group("/api/v1")

	v1.Post("/reports", func(c *fiber.Ctx) error {
		var req reportRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rr, err := req.toReportRequest(loc)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.Generate(c.UserContext(), rr)
		if err != nil {
			return reportError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(report)
	})

	v1.Get("/reports/latest", func(c *fiber.Ctx) error {
		report, err := service.LatestReport()
		if err != nil {
			return lookupError(err)
		}
		return sendReport(c, report)
	})

	v1.Get("/reports/:id", func(c *fiber.Ctx) error {
		report, err := service.GetReport(c.Params("id"))
		if err != nil {
			return lookupError(err)
		}
		return sendReport(c, report)
	})
}

func reportError(err error) error {
	switch {
	case errors.Is(err, route.ErrInvalidSegment), errors.Is(err, route.ErrEmptyRoute):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrNoDirections):
		return fiber.NewError(fiber.StatusBadRequest, "directions lookup is not configured; supply route segments")
	case errors.Is(err, weather.ErrNoStationsAvailable):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "no weather stations available for route")
	case errors.Is(err, weather.ErrDirectionsUnavailable):
		return fiber.NewError(fiber.StatusBadGateway, "failed to fetch directions")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build route weather report")
	}
}

func lookupError(err error) error {
	if errors.Is(err, weather.ErrReportNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "report not found")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch report")
}

func sendReport(c *fiber.Ctx, report weather.Report) error {
	if c.Query("format") != "text" {
		return c.JSON(report)
	}

	var buf bytes.Buffer
	if err := weather.RenderText(&buf, report); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render report")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Send(buf.Bytes())
}

// reportRequest is the body of POST /reports.
type reportRequest struct {
	Departure   string           `json:"departure" validate:"required"`
	Origin      string           `json:"origin" validate:"required_with=Destination"`
	Destination string           `json:"destination" validate:"required_with=Origin"`
	Segments    []segmentRequest `json:"segments" validate:"omitempty,dive"`

	// DurationSeconds overrides the segment sum when set.
	DurationSeconds int `json:"durationSeconds" validate:"gte=0"`
}

type segmentRequest struct {
	StartLat        float64 `json:"startLat" validate:"gte=-90,lte=90"`
	StartLng        float64 `json:"startLng" validate:"gte=-180,lte=180"`
	EndLat          float64 `json:"endLat" validate:"gte=-90,lte=90"`
	EndLng          float64 `json:"endLng" validate:"gte=-180,lte=180"`
	DurationSeconds int     `json:"durationSeconds"`
}

func (r reportRequest) toReportRequest(loc *time.Location) (weather.ReportRequest, error) {
	departure, err := parseTime(r.Departure, loc)
	if err != nil {
		return weather.ReportRequest{}, err
	}

	rr := weather.ReportRequest{
		Departure:   departure,
		Origin:      r.Origin,
		Destination: r.Destination,
	}

	if len(r.Segments) == 0 {
		if r.Origin == "" {
			return weather.ReportRequest{}, errors.New("either segments or origin and destination are required")
		}
		return rr, nil
	}

	segments := make([]route.Segment, 0, len(r.Segments))
	for _, s := range r.Segments {
		segments = append(segments, route.Segment{
			Start:           geo.Coordinate{Lat: s.StartLat, Lng: s.StartLng},
			End:             geo.Coordinate{Lat: s.EndLat, Lng: s.EndLng},
			DurationSeconds: s.DurationSeconds,
		})
	}

	rt := route.FromSegments(segments)
	rt.Origin = r.Origin
	rt.Destination = r.Destination
	if r.DurationSeconds > 0 {
		rt.DurationSeconds = r.DurationSeconds
	}
	rr.Route = &rt

	return rr, nil
}

// parseTime accepts RFC3339, Unix seconds or "YYYY-MM-DD HH:MM" in loc.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if ts, err := time.ParseInLocation("2006-01-02 15:04", s, loc); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).In(loc), nil
	}
	return time.Time{}, errors.New("invalid departure format; use RFC3339, unix seconds or YYYY-MM-DD HH:MM")
}
