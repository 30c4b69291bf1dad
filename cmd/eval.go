package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/open-feature/go-sdk-lite/pkg/model"
	"github.com/open-feature/go-sdk-lite/pkg/openfeature"
	"github.com/open-feature/go-sdk-lite/pkg/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	evalFlagType     string
	evalFlagKey      string
	evalDefault      string
	evalTargetingKey string
	evalAttributes   map[string]string
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a single flag and print its details",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		flagType, err := model.ParseFlagType(evalFlagType)
		if err != nil {
			return err
		}

		providerImpl, closeProvider, err := findProvider(
			viper.GetString("provider"),
			viper.GetString("uri"),
			"",
		)
		if err != nil {
			return err
		}
		defer closeProvider()

		api := openfeature.Global()
		api.SetProvider(providerImpl)
		client := api.Client(viper.GetString("client-name"), viper.GetString("client-version"))

		details, err := service.EvaluateRaw(context.Background(), client, flagType, evalFlagKey, evalDefault, evaluationContext())
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(details, "", "  ")
		if err != nil {
			return fmt.Errorf("unable to marshal details: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func evaluationContext() model.EvaluationContext {
	attributes := make(map[string]interface{}, len(evalAttributes))
	for k, v := range evalAttributes {
		attributes[k] = v
	}
	return model.NewEvaluationContext(evalTargetingKey, attributes)
}

func init() {
	evalCmd.Flags().StringVarP(&evalFlagType, "type", "t", "boolean", "flag type: boolean, string, number or object")
	evalCmd.Flags().StringVarP(&evalFlagKey, "key", "k", "", "flag key")
	evalCmd.Flags().StringVarP(&evalDefault, "default", "d", "", "default value, parsed according to --type")
	evalCmd.Flags().StringVar(&evalTargetingKey, "targeting-key", "", "targeting key of the evaluation context")
	evalCmd.Flags().StringToStringVarP(&evalAttributes, "attribute", "a", nil, "evaluation context attributes, key=value")
	_ = evalCmd.MarkFlagRequired("key")
	rootCmd.AddCommand(evalCmd)
}
