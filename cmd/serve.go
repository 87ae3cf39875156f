package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brandlift/seo-cli/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start webhook server for content generation requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAnthropicKey(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline()
		if err != nil {
			return err
		}
		defer env.Close()

		mux := http.NewServeMux()

		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		})

		mux.HandleFunc("POST /webhook/generate", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Name              string `json:"name"`
				PrimaryKeywords   string `json:"primary_keywords"`
				SecondaryKeywords string `json:"secondary_keywords"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}

			if req.Name == "" {
				http.Error(w, `{"error":"name is required"}`, http.StatusBadRequest)
				return
			}

			product := model.Product{
				Name:              req.Name,
				PrimaryKeywords:   model.SplitKeywords(req.PrimaryKeywords),
				SecondaryKeywords: model.SplitKeywords(req.SecondaryKeywords),
			}

			// Run generation asynchronously; a webhook caller gets an ack,
			// not the content.
			go func() {
				content, err := env.Pipeline.Generate(ctx, product)
				if err != nil {
					zap.L().Error("webhook generation failed",
						zap.String("product", product.Name),
						zap.Error(err),
					)
					return
				}
				zap.L().Info("webhook generation complete",
					zap.String("product", product.Name),
					zap.String("run_id", content.RunID),
				)
			}()

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "accepted",
				"product": req.Name,
			})
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
