package cli

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print page count and text layer details",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var (
	renderOut   string
	renderPage  int
	renderZoom  float64
	renderThumb bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a page to a PNG file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var assembleOut string

var assembleCmd = &cobra.Command{
	Use:   "assemble <file...>",
	Short: "Merge the pages of several files into one PDF",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAssemble,
}

var (
	stampOut  string
	stampPage int
	stampX    float64
	stampY    float64
)

var stampCmd = &cobra.Command{
	Use:   "stamp <file> <text>",
	Short: "Stamp text onto a page and save a copy",
	Args:  cobra.ExactArgs(2),
	RunE:  runStamp,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "page.png", "output PNG path")
	renderCmd.Flags().IntVarP(&renderPage, "page", "p", 1, "page number, 1-based")
	renderCmd.Flags().Float64VarP(&renderZoom, "zoom", "z", 0, "zoom factor (default FREEBIRD_RENDER_SCALE)")
	renderCmd.Flags().BoolVar(&renderThumb, "thumbnail", false, "render at thumbnail scale instead")

	assembleCmd.Flags().StringVarP(&assembleOut, "out", "o", "assembly.pdf", "output PDF path")

	stampCmd.Flags().StringVarP(&stampOut, "out", "o", "", "output PDF path (default <file>_modified.pdf)")
	stampCmd.Flags().IntVarP(&stampPage, "page", "p", 1, "page number, 1-based")
	stampCmd.Flags().Float64Var(&stampX, "x", 72, "horizontal offset in points from the left edge")
	stampCmd.Flags().Float64Var(&stampY, "y", 72, "vertical offset in points from the top edge")

	rootCmd.AddCommand(infoCmd, renderCmd, assembleCmd, stampCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	_, _, set, err := setup()
	if err != nil {
		return err
	}
	defer set.CloseAll()

	d, err := set.Open(args[0])
	if err != nil {
		return err
	}

	cmd.Printf("File:   %s\n", d.Path())
	cmd.Printf("Pages:  %d\n", d.PageCount())
	if d.HasText(5) {
		cmd.Println("Text:   extractable")
	} else {
		cmd.Println("Text:   none found (scanned or image-only)")
	}
	cmd.Printf("Save suggestion: %s\n", d.SuggestedSaveName())
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, _, set, err := setup()
	if err != nil {
		return err
	}
	defer set.CloseAll()

	d, err := set.Open(args[0])
	if err != nil {
		return err
	}
	if !d.GotoPage(renderPage-1) && renderPage != 1 {
		return fmt.Errorf("page %d out of range 1-%d", renderPage, d.PageCount())
	}

	zoom := renderZoom
	if zoom == 0 {
		zoom = cfg.RenderScale
	}
	if !d.SetZoom(zoom) && zoom != d.Zoom() {
		return fmt.Errorf("zoom %.2f out of range", zoom)
	}

	var img image.Image
	if renderThumb {
		img = d.RenderThumbnail(renderPage - 1)
	} else {
		img = d.RenderCurrentPage()
	}
	out, err := os.Create(renderOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", renderOut, err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	cmd.Printf("Wrote page %d of %s to %s\n", renderPage, args[0], renderOut)
	return nil
}

func runAssemble(cmd *cobra.Command, args []string) error {
	_, log, set, err := setup()
	if err != nil {
		return err
	}
	defer set.CloseAll()

	target, err := set.CreateAssembly()
	if err != nil {
		return err
	}

	for _, path := range args {
		src, err := set.Open(path)
		if err != nil {
			return err
		}
		if err := target.InsertPagesFrom(src, 0, src.PageCount()-1); err != nil {
			return fmt.Errorf("append %s: %w", path, err)
		}
		log.Info("appended", "file", path, "pages", src.PageCount())
	}

	if err := target.Save(assembleOut); err != nil {
		return err
	}
	cmd.Printf("Wrote %d pages to %s\n", target.PageCount(), assembleOut)
	return nil
}

func runStamp(cmd *cobra.Command, args []string) error {
	_, _, set, err := setup()
	if err != nil {
		return err
	}
	defer set.CloseAll()

	d, err := set.Open(args[0])
	if err != nil {
		return err
	}
	if !d.GotoPage(stampPage-1) && stampPage != 1 {
		return fmt.Errorf("page %d out of range 1-%d", stampPage, d.PageCount())
	}
	if err := d.StampText(args[1], stampX, stampY); err != nil {
		return err
	}

	out := stampOut
	if out == "" {
		out = d.SuggestedSaveName()
	}
	if err := d.Save(out); err != nil {
		return err
	}
	cmd.Printf("Stamped page %d, wrote %s\n", stampPage, out)
	return nil
}
