package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oortis/tempscore/internal/contracts"
	"github.com/oortis/tempscore/internal/pipeline"
)

// scoreCmd runs the scoring pipeline once from a portfolio file.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a portfolio file",
	Long: `Run the temperature scoring pipeline once for a portfolio JSON
file and print the result.

The portfolio file is a JSON array of companies:
  [{"company_id": "US001", "company_name": "Acme", "investment_value": 1000000}]

Example:
  tempscore score --portfolio portfolio.json --method WATS --group sector`,
	RunE: runScore,
}

var (
	scorePortfolioPath string
	scoreMethod        string
	scoreGrouping      []string
	scoreProviders     []string
	scoreFallback      float64
)

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scorePortfolioPath, "portfolio", "", "portfolio JSON file (required)")
	scoreCmd.Flags().StringVar(&scoreMethod, "method", "", "aggregation method (default from providers file)")
	scoreCmd.Flags().StringSliceVar(&scoreGrouping, "group", nil, "grouping columns")
	scoreCmd.Flags().StringSliceVar(&scoreProviders, "provider", nil, "data providers to use")
	scoreCmd.Flags().Float64Var(&scoreFallback, "fallback", -1, "fallback score (default from providers file)")
	_ = scoreCmd.MarkFlagRequired("portfolio")
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(scorePortfolioPath)
	if err != nil {
		return fmt.Errorf("read portfolio: %w", err)
	}
	var portfolio []contracts.PortfolioCompany
	if err := json.Unmarshal(data, &portfolio); err != nil {
		return fmt.Errorf("parse portfolio: %w", err)
	}

	methodStr := scoreMethod
	if methodStr == "" {
		methodStr = a.providersCfg.DefaultAggregation
	}
	method, err := contracts.ParseAggregationMethod(methodStr)
	if err != nil {
		return err
	}

	fallback := scoreFallback
	if fallback < 0 {
		fallback = a.providersCfg.DefaultScore
	}

	result, err := a.pipeline.Run(ctx, pipeline.Request{
		Providers:     scoreProviders,
		Portfolio:     portfolio,
		FallbackScore: fallback,
		Method:        method,
		Grouping:      scoreGrouping,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Coverage: %.4f\n\n", result.Coverage)
	for _, agg := range result.Aggregations {
		fmt.Println(agg.String())
	}

	return nil
}
