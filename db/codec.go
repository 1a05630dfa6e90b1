package db

import (
	"bytes"
	"encoding/json"

	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/pkg/errors"
)

// decodeCollection parses a stored document, which must be a JSON array of objects.
func decodeCollection(data []byte) ([]models.Record, error) {
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "invalid collection document")
	}
	if records == nil {
		return nil, errors.New("invalid collection document: not a JSON array")
	}
	return records, nil
}

// encodeCollection renders records as an indented JSON array with a trailing newline.
func encodeCollection(records []models.Record) ([]byte, error) {
	if records == nil {
		records = []models.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, errors.Wrap(err, "failed to encode collection")
	}
	return buf.Bytes(), nil
}
