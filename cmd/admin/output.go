package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"bookswap/internal/model"
)

// export writes snap in the blob's own field naming. YAML goes through the JSON form so both
// formats share the camelCase keys.
func export(w io.Writer, snap *model.Snapshot, format string) error {
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	switch strings.ToLower(format) {
	case "json":
		_, err = fmt.Fprintln(w, string(payload))
		return err
	case "yaml", "yml":
		var generic map[string]interface{}
		if err := json.Unmarshal(payload, &generic); err != nil {
			return fmt.Errorf("decode snapshot: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

func printStats(w io.Writer, snap *model.Snapshot) {
	available := 0
	for _, l := range snap.Listings {
		if l.Available {
			available++
		}
	}
	byStatus := make(map[model.SwapStatus]int)
	for _, s := range snap.Swaps {
		byStatus[s.Status]++
	}

	fmt.Fprintf(w, "%-10s %d\n", "users:", len(snap.Users))
	fmt.Fprintf(w, "%-10s %d\n", "books:", len(snap.Books))
	fmt.Fprintf(w, "%-10s %d (%d available)\n", "listings:", len(snap.Listings), available)
	fmt.Fprintf(w, "%-10s %d\n", "swaps:", len(snap.Swaps))
	for _, status := range []model.SwapStatus{
		model.SwapStatusPending,
		model.SwapStatusAccepted,
		model.SwapStatusDeclined,
		model.SwapStatusCompleted,
		model.SwapStatusCancelled,
	} {
		fmt.Fprintf(w, "  %-12s %d\n", strings.ToLower(string(status))+":", byStatus[status])
	}
	fmt.Fprintf(w, "%-10s %d\n", "ratings:", len(snap.Ratings))
}
