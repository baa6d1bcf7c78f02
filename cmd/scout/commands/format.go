package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tverano/solarscout/internal/service"
)

// emitReport writes a single-lead report to a file or stdout.
func emitReport(scorer *service.Service, report *service.Report, out string) error {
	if out != "" {
		return scorer.SaveReport(report, out)
	}
	return emitJSON(report, "")
}

// emitJSON marshals any value as indented JSON to a file or stdout.
func emitJSON(value interface{}, out string) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	if out == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}
