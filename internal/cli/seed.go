package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bannersmith/pkg/banner"
)

// seedOpts holds the command-line flags for the seed command.
type seedOpts struct {
	title       string   // main headline text
	description string   // supporting copy (empty = no description asset)
	cta         string   // call-to-action label
	logo        string   // partner logo URL
	background  string   // background image URL
	colors      []string // brand color palette (hex)
	force       bool     // overwrite an existing composition
}

// seedCommand creates the seed command for bootstrapping a composition.
func (c *CLI) seedCommand() *cobra.Command {
	var opts seedOpts

	cmd := &cobra.Command{
		Use:   "seed <banner-id>",
		Short: "Create a new composition with the default layout",
		Long: `Seed creates a composition for a banner from partner inputs and saves it
to the configured store. Assets are placed in the default layout: logo in
the top-right corner, title top-left, description below the title, and the
call-to-action button below the description. An empty description omits the
description asset entirely.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSeed(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "main headline text")
	cmd.Flags().StringVar(&opts.description, "description", "", "supporting copy (omit for none)")
	cmd.Flags().StringVar(&opts.cta, "cta", "", "call-to-action label")
	cmd.Flags().StringVar(&opts.logo, "logo", "", "partner logo URL")
	cmd.Flags().StringVar(&opts.background, "background", "", "background image URL")
	cmd.Flags().StringSliceVar(&opts.colors, "brand-color", nil, "brand color in hex (repeatable)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing composition")

	return cmd
}

func (c *CLI) runSeed(cmd *cobra.Command, bannerID string, opts *seedOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	p := newProgress(c.Logger)

	cfg, err := c.config()
	if err != nil {
		return err
	}

	colors := opts.colors
	if len(colors) == 0 {
		colors = cfg.Brand.Colors
	}

	st, err := c.newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if !opts.force {
		if _, err := st.Load(ctx, bannerID); err == nil {
			printWarning("Banner %s already exists (use --force to overwrite)", bannerID)
			return nil
		}
	}

	comp := banner.NewComposition(banner.Seed{
		BannerID:           bannerID,
		BackgroundImageURL: opts.background,
		PartnerLogoURL:     opts.logo,
		MainText:           opts.title,
		DescriptionText:    opts.description,
		CTAText:            opts.cta,
		BrandColors:        colors,
		CanvasSize:         cfg.canvasSize(),
	})

	if err := st.Save(ctx, bannerID, comp); err != nil {
		return err
	}

	p.done("Seeded composition")
	printSuccess("Created banner %s with %d assets", bannerID, len(comp.Assets))
	printDetail("Canvas: %.0fx%.0f", comp.CanvasSize.Width, comp.CanvasSize.Height)
	printNextStep("Edit it", "bannersmith edit "+bannerID)
	return nil
}
