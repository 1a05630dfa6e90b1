package handlers

import (
	"bytes"
	"fmt"
	"image/color"
	"net/http"
	"net/url"
	"strconv"

	"github.com/EO-DataHub/eodhp-resource-services/api/services"
	"github.com/EO-DataHub/eodhp-resource-services/internal/placeholder"
)

const (
	defaultPlaceholderWidth  = 300
	defaultPlaceholderHeight = 200
)

// GetPlaceholder renders a PNG placeholder. Query parameters: width, height,
// text (defaults to "<width> x <height>"), bg and fg as hex colours.
func GetPlaceholder() AppHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		opts, err := placeholderOptions(r.URL.Query())
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := placeholder.Render(&buf, opts); err != nil {
			return err
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
		_, err = w.Write(buf.Bytes())
		return err
	}
}

func placeholderOptions(q url.Values) (placeholder.Options, error) {
	opts := placeholder.Options{
		Width:      defaultPlaceholderWidth,
		Height:     defaultPlaceholderHeight,
		Background: placeholder.DefaultBackground,
		Foreground: placeholder.DefaultForeground,
	}

	var err error
	if opts.Width, err = intParam(q, "width", opts.Width); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q, "height", opts.Height); err != nil {
		return opts, err
	}
	if opts.Background, err = colorParam(q, "bg", opts.Background); err != nil {
		return opts, err
	}
	if opts.Foreground, err = colorParam(q, "fg", opts.Foreground); err != nil {
		return opts, err
	}

	opts.Text = q.Get("text")
	if opts.Text == "" {
		opts.Text = fmt.Sprintf("%d x %d", opts.Width, opts.Height)
	}

	switch err := opts.Validate(); err {
	case nil:
	case placeholder.ErrTextTooLong:
		return opts, services.NewHTTPError(http.StatusBadRequest, "Invalid text: "+err.Error())
	default:
		return opts, services.NewHTTPError(http.StatusBadRequest, "Invalid placeholder size: "+err.Error())
	}
	return opts, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, services.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Invalid %s: %q is not a whole number", name, raw))
	}
	return v, nil
}

func colorParam(q url.Values, name string, def color.RGBA) (color.RGBA, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	c, err := placeholder.ParseHexColor(raw)
	if err != nil {
		return def, services.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Invalid %s: %v", name, err))
	}
	return c, nil
}
