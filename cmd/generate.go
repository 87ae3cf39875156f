package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brandlift/seo-cli/internal/model"
)

var (
	generateName      string
	generateKeywords  string
	generateSecondary string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Research a product and generate its SEO content record",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAnthropicKey(); err != nil {
			return err
		}

		env, err := initPipeline()
		if err != nil {
			return err
		}
		defer env.Close()

		product := model.Product{
			Name:              generateName,
			PrimaryKeywords:   model.SplitKeywords(generateKeywords),
			SecondaryKeywords: model.SplitKeywords(generateSecondary),
		}

		content, err := env.Pipeline.Generate(cmd.Context(), product)
		if err != nil {
			return err
		}

		zap.L().Info("generation complete",
			zap.String("run_id", content.RunID),
			zap.String("meta_title", content.MetaTitle),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(content)
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateName, "name", "", "product name (required)")
	generateCmd.Flags().StringVar(&generateKeywords, "keywords", "", "comma-separated primary keywords")
	generateCmd.Flags().StringVar(&generateSecondary, "secondary-keywords", "", "comma-separated secondary keywords")
	_ = generateCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(generateCmd)
}
