package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-15")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.February, 15), d)
	assert.Equal(t, "2025-02-15", d.String())

	_, err = ParseDate("15/02/2025")
	assert.Error(t, err)
}

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	d := DateOf(time.Date(2025, time.January, 28, 23, 30, 0, 0, loc))
	assert.Equal(t, "2025-01-28", d.String())
	assert.Equal(t, time.UTC, d.Time().Location())
	assert.Equal(t, 0, d.Time().Hour())
}

func TestDate_AddDaysAndCompare(t *testing.T) {
	d := NewDate(2025, time.January, 30)
	next := d.AddDays(3)
	assert.Equal(t, "2025-02-02", next.String())
	assert.True(t, d.Before(next))
	assert.False(t, next.Before(d))
	assert.True(t, next.AddDays(-3).Equal(d))
}

func TestDate_JSON(t *testing.T) {
	var v Vehicle
	err := json.Unmarshal([]byte(`{"vehicle_id":"TRK-001","type":"Truck","status":"active","fuel_efficiency":28.5,"next_maintenance":"2025-02-15"}`), &v)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.February, 15), v.NextMaintenance)
	assert.Nil(t, v.LastMaintenance)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"next_maintenance":"2025-02-15"`)
	assert.NotContains(t, string(out), "last_maintenance")
}

func TestDate_JSONAcceptsTimestampsAndEmpty(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-01-28T10:00:00Z"`), &d))
	assert.Equal(t, "2025-01-28", d.String())

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`20250128`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"tomorrow"`), &d))
}

func TestDate_BSON(t *testing.T) {
	last := NewDate(2024, time.November, 2)
	in := Vehicle{
		VehicleID:       "BUS-006",
		Type:            VehicleBus,
		Status:          StatusActive,
		FuelEfficiency:  18.5,
		NextMaintenance: NewDate(2025, time.February, 5),
		LastMaintenance: &last,
		Mileage:         67000,
	}
	data, err := bson.Marshal(in)
	require.NoError(t, err)

	var raw bson.M
	require.NoError(t, bson.Unmarshal(data, &raw))
	assert.Equal(t, "2025-02-05", raw["next_maintenance"])

	var out Vehicle
	require.NoError(t, bson.Unmarshal(data, &out))
	assert.Equal(t, in.NextMaintenance, out.NextMaintenance)
	require.NotNil(t, out.LastMaintenance)
	assert.Equal(t, last, *out.LastMaintenance)
}

func TestDate_BSONDateTime(t *testing.T) {
	data, err := bson.Marshal(bson.M{
		"vehicle_id":       "VAN-002",
		"next_maintenance": time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var out Vehicle
	require.NoError(t, bson.Unmarshal(data, &out))
	assert.Equal(t, "2025-02-20", out.NextMaintenance.String())
}
