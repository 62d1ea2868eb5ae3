package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mukesh.dev/internal/page"
	"mukesh.dev/internal/viewport"
)

var (
	genFrames int
	genStride int
)

var generateCmd = &cobra.Command{
	Use:   "generate <output-dir>",
	Short: "Write a static snapshot of the page that cycles pre-rendered background frames",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if genFrames < 1 || genStride < 1 {
			return fmt.Errorf("--frames and --stride must be at least 1")
		}

		s, err := buildSite(cfg)
		if err != nil {
			return err
		}

		outputDir := args[0]
		framesDir := filepath.Join(outputDir, "frames")
		if err := os.MkdirAll(framesDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		var html bytes.Buffer
		vp := viewport.Viewport{Width: cfg.Viewport.DefaultWidth, Height: cfg.Viewport.DefaultHeight}
		snap := &page.Snapshot{FrameDir: "frames", Frames: genFrames, Stride: genStride}
		if err := s.composer.Render(&html, page.State{Viewport: vp, Snapshot: snap}); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outputDir, "index.html"), html.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing index.html: %w", err)
		}
		if err := copyStatic(filepath.Join(outputDir, "static")); err != nil {
			return err
		}

		bar := progressbar.NewOptions(genFrames,
			progressbar.OptionSetDescription("Rendering frames"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		ctx := cmd.Context()
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.NumCPU())
		for i := range genFrames {
			g.Go(func() error {
				frame := uint64(i * genStride)
				var buf bytes.Buffer
				if err := s.background.RenderStill(gctx, vp.Width, vp.Height, frame, &buf); err != nil {
					return fmt.Errorf("frame %d: %w", frame, err)
				}
				path := filepath.Join(framesDir, snap.FrameName(i))
				if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				return bar.Add(1)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		_ = bar.Finish()

		fmt.Printf("Wrote index.html and %d frames to %s\n", genFrames, outputDir)
		return nil
	},
}

// copyStatic writes the embedded assets under dir
func copyStatic(dir string) error {
	static := page.Static()
	return fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
}

func init() {
	generateCmd.Flags().IntVar(&genFrames, "frames", 60, "number of background frames to render")
	generateCmd.Flags().IntVar(&genStride, "stride", 10, "rotation frames between rendered frames")
	rootCmd.AddCommand(generateCmd)
}
