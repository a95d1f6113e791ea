package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List nearby GoCube smart cubes",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

// scanForCube scans for GoCube devices with retries. macOS sometimes needs
// more than one pass before the cube shows up.
func scanForCube(ctx context.Context, maxAttempts int, log zerolog.Logger) ([]cubesolver.Device, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		devices, err := cubesolver.Scan(ctx, 5*time.Second, log)
		if err != nil {
			lastErr = err
			log.Warn().Err(err).Int("attempt", attempt).Msg("scan failed")
			continue
		}
		if len(devices) > 0 {
			return devices, nil
		}
		log.Debug().Int("attempt", attempt).Msg("no devices found")
	}
	if lastErr != nil {
		return nil, fmt.Errorf("BLE not available: %w", lastErr)
	}
	return nil, nil
}

func runScan(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Scanning for GoCube devices...")

	devices, err := scanForCube(cmd.Context(), 2, zerolog.Nop())
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Fprintln(out, "No GoCube devices found")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Tips:")
		fmt.Fprintln(out, "  - Ensure your GoCube is powered on")
		fmt.Fprintln(out, "  - Move the cube to wake it up")
		fmt.Fprintln(out, "  - Check that Bluetooth is enabled")
		return nil
	}

	fmt.Fprintf(out, "Found %d device(s):\n", len(devices))
	for _, d := range devices {
		fmt.Fprintf(out, "  - %s (%s, RSSI: %d)\n", d.Name, d.Address, d.RSSI)
	}
	return nil
}
