package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"bookswap/internal/model"
	"bookswap/internal/store"
)

func sample() *model.Snapshot {
	snap := store.Seed(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	snap.Swaps = append(snap.Swaps,
		model.Swap{ID: 1, ListingID: 1, RequesterID: 2, Status: model.SwapStatusAccepted},
		model.Swap{ID: 2, ListingID: 2, RequesterID: 1, Status: model.SwapStatusPending},
	)
	snap.Listings[0].Available = false
	return snap
}

func TestExport(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, export(&buf, sample(), "json"))

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
		assert.Contains(t, doc, "nextId")
		assert.Contains(t, doc, "currentUserId")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, export(&buf, sample(), "YAML"))

		var doc struct {
			Listings []struct {
				OwnerID   int64 `yaml:"ownerId"`
				Available bool  `yaml:"available"`
			} `yaml:"listings"`
			NextID struct {
				Swap int64 `yaml:"swap"`
			} `yaml:"nextId"`
		}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
		require.Len(t, doc.Listings, 2)
		assert.Equal(t, int64(1), doc.Listings[0].OwnerID)
		assert.False(t, doc.Listings[0].Available)
		assert.Equal(t, int64(1), doc.NextID.Swap)
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorContains(t, export(&buf, sample(), "xml"), "unknown format")
		assert.Zero(t, buf.Len())
	})
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, sample())

	out := buf.String()
	assert.Contains(t, out, "users:     2\n")
	assert.Contains(t, out, "listings:  2 (1 available)\n")
	assert.Contains(t, out, "swaps:     2\n")
	assert.Contains(t, out, "  accepted:    1\n")
	assert.Contains(t, out, "  cancelled:   0\n")
}
