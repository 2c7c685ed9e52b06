package ecount

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/internal/shared/config"
)

func TestStaticZoneResolver(t *testing.T) {
	r := NewStaticZoneResolver(" ab ")

	zone, err := r.Zone(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "AB", zone)
}

func TestStaticZoneResolver_Empty(t *testing.T) {
	r := NewStaticZoneResolver("")

	_, err := r.Zone(context.Background())

	assert.Error(t, err)
}

func TestParseZoneData(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "bare string", raw: `"AB"`, want: "AB"},
		{name: "object", raw: `{"ZONE":"CD"}`, want: "CD"},
		{name: "empty object", raw: `{}`, wantErr: true},
		{name: "empty string", raw: `""`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone, err := parseZoneData(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, zone)
		})
	}
}

func TestNewZoneResolver_PicksStrategy(t *testing.T) {
	cfg := config.EcountConfig{Zone: "AB"}
	assert.IsType(t, &StaticZoneResolver{}, NewZoneResolver(cfg, noopLogger{}))

	cfg.ZoneLookup = true
	assert.IsType(t, &APIZoneResolver{}, NewZoneResolver(cfg, noopLogger{}))
}
