package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	frameWidth  int
	frameHeight int
	frameNumber uint64
	frameOut    string
)

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Render one background frame to a PNG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := buildSite(cfg)
		if err != nil {
			return err
		}

		if frameWidth == 0 {
			frameWidth = cfg.Viewport.DefaultWidth
		}
		if frameHeight == 0 {
			frameHeight = cfg.Viewport.DefaultHeight
		}

		var buf bytes.Buffer
		if err := s.background.RenderStill(cmd.Context(), frameWidth, frameHeight, frameNumber, &buf); err != nil {
			return err
		}
		if err := os.WriteFile(frameOut, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", frameOut, err)
		}
		fmt.Printf("Wrote %dx%d frame %d to %s\n", frameWidth, frameHeight, frameNumber, frameOut)
		return nil
	},
}

func init() {
	frameCmd.Flags().IntVar(&frameWidth, "width", 0, "frame width (default viewport.default_width)")
	frameCmd.Flags().IntVar(&frameHeight, "height", 0, "frame height (default viewport.default_height)")
	frameCmd.Flags().Uint64Var(&frameNumber, "frame", 0, "frames of rotation to apply")
	frameCmd.Flags().StringVarP(&frameOut, "output", "o", "background.png", "output file")
	rootCmd.AddCommand(frameCmd)
}
