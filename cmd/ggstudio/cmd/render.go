package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	studio "github.com/gogpu/gg-studio"
)

var (
	renderImage  string
	renderFormat string
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render <design.json>",
	Short: "Flatten a saved design over an image",
	Long: `Composite the visible elements of a saved design over an image at the
image's native resolution and write the result.

Examples:
  ggstudio render design.json --image clean.png
  ggstudio render design.json --image clean.png --format jpeg -o flyer.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderImage, "image", "i", "", "base image file")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "png", "output format: png, jpeg or tiff")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default design-output.<ext>)")
	renderCmd.Flags().StringVar(&fontDir, "fonts", cfg.FontDir, "directory with catalog font files")

	_ = renderCmd.MarkFlagRequired("image")
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := studio.ParseFormat(renderFormat)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read design: %w", err)
	}
	var project studio.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return err
	}
	base, err := studio.ReadImageFile(renderImage)
	if err != nil {
		return err
	}

	c := studio.NewCompositor()
	if c.Fonts, err = loadFonts(fontDir); err != nil {
		return err
	}
	out, err := c.Composite(base, project.Elements)
	if err != nil {
		return err
	}

	path := renderOutput
	if path == "" {
		path = format.FileName()
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := format.Encode(f, out); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d elements)\n", path, len(project.Elements))
	return nil
}
