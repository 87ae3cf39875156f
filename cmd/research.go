package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brandlift/seo-cli/internal/model"
)

var (
	researchName      string
	researchKeywords  string
	researchSecondary string
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Scrape the web for a product and extract price and UPC facts",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline()
		if err != nil {
			return err
		}
		defer env.Close()

		product := model.Product{
			Name:              researchName,
			PrimaryKeywords:   model.SplitKeywords(researchKeywords),
			SecondaryKeywords: model.SplitKeywords(researchSecondary),
		}

		rec, err := env.Pipeline.Research(cmd.Context(), product)
		if err != nil {
			return err
		}

		zap.L().Info("research complete",
			zap.String("run_id", rec.RunID),
			zap.Int("pages_fetched", rec.Stats.Fetched),
			zap.String("upc", rec.UPC),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	researchCmd.Flags().StringVar(&researchName, "name", "", "product name (required)")
	researchCmd.Flags().StringVar(&researchKeywords, "keywords", "", "comma-separated primary keywords")
	researchCmd.Flags().StringVar(&researchSecondary, "secondary-keywords", "", "comma-separated secondary keywords")
	_ = researchCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(researchCmd)
}
