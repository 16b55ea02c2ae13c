package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	watermark "github.com/gcslaoli/text-watermark-go"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Show image info and where the watermark would be placed",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	watermarkFlags(identifyCmd)
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	p, err := paramsFromFlags(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := watermark.Decode(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	eng := watermark.NewEngine(watermark.WithLogger(logger))
	b := img.Bounds()
	placement, err := eng.PlacementFor(b.Dx(), b.Dy(), p)
	if err != nil {
		return err
	}
	face, fontName, fallback, _ := eng.Fonts().Resolve(p.FontSize)
	face.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:       %s\n", path)
	fmt.Fprintf(out, "Format:     %s\n", format)
	fmt.Fprintf(out, "Dimensions: %d x %d\n", b.Dx(), b.Dy())
	fmt.Fprintf(out, "Text:       %q (%dpx, %s)\n", p.Text, p.FontSize, p.Corner)
	if fallback {
		fmt.Fprintf(out, "Font:       %s (fallback, fixed size)\n", fontName)
	} else {
		fmt.Fprintf(out, "Font:       %s\n", fontName)
	}
	fmt.Fprintf(out, "Text box:   %d x %d at %v\n", placement.Size().X, placement.Size().Y, placement.Origin())
	if !placement.Rect.In(b) {
		fmt.Fprintln(out, "Warning:    text does not fit inside the image")
	}
	return nil
}
