package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bannersmith/pkg/banner"
	bserrors "github.com/matzehuels/bannersmith/pkg/errors"
	"github.com/matzehuels/bannersmith/pkg/export"
	"github.com/matzehuels/bannersmith/pkg/render"
	"github.com/matzehuels/bannersmith/pkg/store"
)

// serveCommand creates the serve command exposing compositions over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve compositions and exports over HTTP",
		Long: `Serve starts an HTTP server backed by the configured store.

Endpoints:
  GET  /healthz                          liveness probe
  GET  /api/banners/{bannerID}           fetch a composition document
  PUT  /api/banners/{bannerID}           replace a composition document
  POST /api/banners/{bannerID}/export    produce the image artifact`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr string) error {
	ctx := withLogger(cmd.Context(), c.Logger)

	cfg, err := c.config()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	st, err := c.newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	h := &apiHandler{cli: c, cfg: cfg, store: st}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", h.health)
	r.Route("/api/banners/{bannerID}", func(r chi.Router) {
		r.Get("/", h.getBanner)
		r.Put("/", h.putBanner)
		r.Post("/export", h.exportBanner)
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("Shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// =============================================================================
// Handlers
// =============================================================================

type apiHandler struct {
	cli   *CLI
	cfg   Config
	store store.Store
}

func (h *apiHandler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (h *apiHandler) getBanner(w http.ResponseWriter, r *http.Request) {
	bannerID := chi.URLParam(r, "bannerID")

	comp, err := h.store.Load(r.Context(), bannerID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "banner not found")
		return
	}
	if err != nil {
		h.cli.Logger.Error("load failed", "banner", bannerID, "err", err)
		writeError(w, http.StatusInternalServerError, "load failed")
		return
	}

	writeJSON(w, http.StatusOK, comp)
}

func (h *apiHandler) putBanner(w http.ResponseWriter, r *http.Request) {
	bannerID := chi.URLParam(r, "bannerID")

	var comp banner.Composition
	if err := json.NewDecoder(r.Body).Decode(&comp); err != nil {
		writeError(w, http.StatusBadRequest, "invalid composition document")
		return
	}
	comp.BannerID = bannerID
	comp.Touch()

	if err := h.store.Save(r.Context(), bannerID, &comp); err != nil {
		h.cli.Logger.Error("save failed", "banner", bannerID, "err", err)
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}

	writeJSON(w, http.StatusOK, &comp)
}

func (h *apiHandler) exportBanner(w http.ResponseWriter, r *http.Request) {
	bannerID := chi.URLParam(r, "bannerID")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatPNG
	}
	if !render.ValidFormat(format) {
		writeError(w, http.StatusBadRequest, "invalid format")
		return
	}

	comp, err := h.store.Load(r.Context(), bannerID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "banner not found")
		return
	}
	if err != nil {
		h.cli.Logger.Error("load failed", "banner", bannerID, "err", err)
		writeError(w, http.StatusInternalServerError, "load failed")
		return
	}

	set := h.cli.resolveImages(r.Context(), h.cfg, comp)

	data, err := export.New(h.cli.Logger).Export(r.Context(), comp, set, format)
	if err != nil {
		h.cli.Logger.Error("export failed", "banner", bannerID, "err", err, "code", bserrors.GetCode(err))
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	filename := export.Filename(h.cfg.Brand.PartnerName, time.Now(), format)
	w.Header().Set("Content-Type", "image/"+format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
