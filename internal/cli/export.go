package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bannersmith/pkg/export"
	"github.com/matzehuels/bannersmith/pkg/notify"
	"github.com/matzehuels/bannersmith/pkg/render"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output  string // explicit output file path
	format  string // artifact format: "png" or "jpeg"
	partner string // partner name for the artifact filename
}

// exportCommand creates the export command for producing the shareable
// artifact. Export recovers from untrusted pixels by rebuilding the surface
// from brand colors and placeholders, so it always yields a usable file.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <banner-id>",
		Short: "Export a composition as a shareable image artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !render.ValidFormat(opts.format) {
				return fmt.Errorf("invalid format: %s (must be 'png' or 'jpeg')", opts.format)
			}
			return c.runExport(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default {partner}_banner_{timestamp}.{ext})")
	cmd.Flags().StringVarP(&opts.format, "format", "f", render.FormatPNG, "artifact format: png (default), jpeg")
	cmd.Flags().StringVar(&opts.partner, "partner", "", "partner name for the filename (default from config)")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, bannerID string, opts *exportOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	p := newProgress(c.Logger)
	notifier := notify.NewLogNotifier(c.Logger)

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

	set := c.resolveImages(ctx, cfg, comp)

	data, err := export.New(c.Logger).Export(ctx, comp, set, opts.format)
	if err != nil {
		notifier.Notify(ctx, notify.KindError, "Export failed", err.Error())
		return err
	}

	partner := opts.partner
	if partner == "" {
		partner = cfg.Brand.PartnerName
	}
	path := opts.output
	if path == "" {
		path = export.Filename(partner, time.Now(), opts.format)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		notifier.Notify(ctx, notify.KindError, "Export failed", err.Error())
		return err
	}

	p.done("Exported banner")
	notifier.Notify(ctx, notify.KindSuccess, "Export complete", path)
	printSuccess("Exported %s", bannerID)
	printFile(path)
	return nil
}
