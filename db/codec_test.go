package db

import (
	"math"
	"testing"

	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCollection(t *testing.T) {
	data, err := encodeCollection(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	data, err = encodeCollection([]models.Record{{"id": 1}})
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": 1\n  }\n]\n", string(data))
}

func TestEncodeCollection_Unencodable(t *testing.T) {
	_, err := encodeCollection([]models.Record{{"price": math.Inf(1)}})
	assert.Error(t, err)
}

func TestDecodeCollection(t *testing.T) {
	records, err := decodeCollection([]byte(`[{"id": "1"}, {"id": 2}]`))
	require.NoError(t, err)
	assert.Equal(t, []models.Record{{"id": "1"}, {"id": float64(2)}}, records)

	records, err = decodeCollection([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)

	for _, bad := range []string{"", "null", "{}", `"users"`, "[1,"} {
		_, err := decodeCollection([]byte(bad))
		assert.Error(t, err, bad)
	}
}
