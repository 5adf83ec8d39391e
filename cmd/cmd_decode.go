package main

import (
	"fmt"

	"github.com/spf13/cobra"

	app "colorcode-receiver/internal/application"
	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/infrastructure/storage"
	"colorcode-receiver/internal/infrastructure/vision"
)

var decodeExpect string

var decodeCmd = &cobra.Command{
	Use:   "decode <image>",
	Short: "Decode one cropped marker image (PNG or JPEG)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&decodeExpect, "expect", "", "expected sequence, overrides the config")
}

func runDecode(cmd *cobra.Command, args []string) error {
	expected := cfg.ExpectedSequence
	if decodeExpect != "" {
		parsed, err := entity.ParseSequence(decodeExpect)
		if err != nil {
			return fmt.Errorf("parse --expect: %w", err)
		}
		expected = parsed
	}

	raster, err := vision.LoadRaster(args[0])
	if err != nil {
		return err
	}
	defer raster.Close()

	svc := app.NewDecodeService(cfg.Marker, vision.NewRasterWarper(), storage.NewMemoryExpectedSequence(expected), logger)
	result, err := svc.DecodeImage(raster)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "key: %d\nsignature: %s\nsymbols: %s\n", int(result.Key), result.Signature, entity.FormatSequence(result.Symbols))
	switch {
	case result.Matched:
		fmt.Fprintln(out, "matched")
	case result.Mismatch != nil:
		fmt.Fprintf(out, "mismatch: %s\n", result.Mismatch)
	}
	return nil
}
