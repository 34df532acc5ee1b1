package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	studio "github.com/gogpu/gg-studio"
	"github.com/gogpu/gg-studio/ai"
)

var (
	eraseOutput      string
	eraseMask        string
	eraseInstruction string
	eraseModel       string
	eraseKey         string
)

var eraseCmd = &cobra.Command{
	Use:   "erase <image>",
	Short: "Remove text from an image with Gemini",
	Long: `Send an image to Gemini and write the cleaned template.

A mask image marks the regions to prioritize; its painted pixels should be
red on a transparent background, sized like the image.

Examples:
  ggstudio erase flyer.png -o clean.png
  ggstudio erase flyer.png --mask marks.png --instruction "keep the logo"`,
	Args: cobra.ExactArgs(1),
	RunE: runErase,
}

func init() {
	rootCmd.AddCommand(eraseCmd)

	eraseCmd.Flags().StringVarP(&eraseOutput, "output", "o", "", "output PNG file (default design-output.png)")
	eraseCmd.Flags().StringVar(&eraseMask, "mask", "", "mask image file")
	eraseCmd.Flags().StringVar(&eraseInstruction, "instruction", "", "extra instruction for the model")
	eraseCmd.Flags().StringVar(&eraseModel, "model", cfg.Model, "Gemini model id")
	eraseCmd.Flags().StringVar(&eraseKey, "key", "", "API key (default: stored key)")
}

func runErase(cmd *cobra.Command, args []string) error {
	key, err := storedKey(cmd.Context(), eraseKey)
	if err != nil {
		return err
	}
	base, err := studio.ReadImageFile(args[0])
	if err != nil {
		return err
	}
	req := studio.EditRequest{Base: base, Instruction: eraseInstruction}
	if eraseMask != "" {
		if req.Mask, err = studio.ReadImageFile(eraseMask); err != nil {
			return err
		}
	}

	client := ai.New(key, ai.WithModel(eraseModel), ai.WithTimeout(cfg.AITimeout))
	out, err := client.Edit(cmd.Context(), req)
	if err != nil {
		return err
	}

	path := eraseOutput
	if path == "" {
		path = studio.FormatPNG.FileName()
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := studio.FormatPNG.Encode(f, out); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s using %s\n", path, client.Model())
	return nil
}
