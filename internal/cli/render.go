package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bannersmith/pkg/banner"
	"github.com/matzehuels/bannersmith/pkg/images"
	"github.com/matzehuels/bannersmith/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // output file path
	format string // output format: "png" or "jpeg"
}

// renderCommand creates the render command for rasterizing a composition.
// Unlike export, render serializes the surface as-is and fails when the
// surface holds untrusted pixels.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <banner-id>",
		Short: "Rasterize a composition to an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !render.ValidFormat(opts.format) {
				return fmt.Errorf("invalid format: %s (must be 'png' or 'jpeg')", opts.format)
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <banner-id>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", render.FormatPNG, "output format: png (default), jpeg")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, bannerID string, opts *renderOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	p := newProgress(c.Logger)

	cfg, err := c.config()
	if err != nil {
		return err
	}

	st, err := c.newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	comp, err := st.Load(ctx, bannerID)
	if err != nil {
		return err
	}
	c.Logger.Infof("Loaded banner %s: %d assets", bannerID, len(comp.Assets))

	set := c.resolveImages(ctx, cfg, comp)

	surface := render.NewSurface(int(comp.CanvasSize.Width), int(comp.CanvasSize.Height))
	render.Render(ctx, surface, comp, set, "", "")

	data, err := surface.Encode(opts.format)
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = fmt.Sprintf("%s.%s", bannerID, opts.format)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	p.done("Rendered banner")
	printSuccess("Rendered %s", bannerID)
	printFile(path)
	return nil
}

// resolveImages fetches every raster the composition references. Failures
// are logged and skipped so the renderer falls back to placeholders.
func (c *CLI) resolveImages(ctx context.Context, cfg Config, comp *banner.Composition) images.Set {
	mgr := images.NewManager(c.newLoader(cfg), nil)

	urls := []string{comp.BackgroundImageURL}
	for _, a := range comp.Assets {
		if a.IsLogo() {
			urls = append(urls, a.ImageURL)
		}
	}

	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := mgr.RequestSync(ctx, url); err != nil {
			c.Logger.Warn("image unavailable, using placeholder", "url", url, "err", err)
		}
	}
	return mgr.Snapshot()
}
