package main

import (
	"fmt"

	"github.com/spf13/cobra"

	watermark "github.com/gcslaoli/text-watermark-go"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Watermark an image and save the result",
	Example: `  twatermark apply -i photo.jpg -o photo_wm.jpg --text "© ACME" --corner br
  twatermark apply -i photo.png --size 48
  twatermark apply --inbase64 "data:image/png;base64,..." --outbase64`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringP("input", "i", "", "Input image (jpg/png/bmp)")
	applyCmd.Flags().String("inbase64", "", "Base64 image input (optionally data URL)")
	applyCmd.Flags().StringP("output", "o", "", "Output path (defaults to <name>_watermarked.png next to the input)")
	applyCmd.Flags().Bool("outbase64", false, "Write the result as base64 PNG to stdout instead of a file")
	watermarkFlags(applyCmd)
	applyCmd.MarkFlagsOneRequired("input", "inbase64")
	applyCmd.MarkFlagsMutuallyExclusive("input", "inbase64")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	inputBase64, _ := cmd.Flags().GetString("inbase64")
	output, _ := cmd.Flags().GetString("output")
	outputBase64, _ := cmd.Flags().GetBool("outbase64")

	p, err := paramsFromFlags(cmd)
	if err != nil {
		return err
	}

	s := newSession(p, logger)
	source := input
	if inputBase64 != "" {
		img, format, err := watermark.DecodeBase64Image(inputBase64)
		if err != nil {
			return err
		}
		s.Load(img, format)
		source = "base64"
	} else if err := s.Open(input); err != nil {
		return err
	}

	if err := s.Render(); err != nil {
		return err
	}
	res := s.Result()
	_, format := s.Source()
	if s.LowContrast() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: the watermark is barely visible on this background.")
	}

	if outputBase64 {
		encoded, err := watermark.EncodePNGToBase64(res.Image)
		if err != nil {
			return fmt.Errorf("encode base64 output: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), encoded)
		fmt.Fprintf(cmd.ErrOrStderr(), "Processed %s (%s) -> base64 [text %v at %v]\n", source, format, res.Placement.Size(), res.Placement.Origin())
		return nil
	}

	if output == "" {
		output = cfg.OutputPath(input)
	}
	written, err := s.Save(output)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processed %s (%s) -> %s [text %v at %v, font %s]\n",
		source, format, written, res.Placement.Size(), res.Placement.Origin(), res.Font)
	return nil
}
