package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/unit-converter/internal/converter"
	"github.com/couchcryptid/unit-converter/internal/domain"
	"github.com/couchcryptid/unit-converter/internal/domain/length"
	"github.com/couchcryptid/unit-converter/internal/domain/temperature"
)

func (c *CLI) convertCommand() *cobra.Command {
	var single, legacy bool

	cmd := &cobra.Command{
		Use:   "convert <quantity> <value> <from> <to>",
		Short: "Convert one value and print the result",
		Example: `  converter convert temperature 100 celsius fahrenheit
  converter convert length 1 mi km
  converter convert temperature 98.6 F C --legacy`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, raw, from, to := args[0], args[1], args[2], args[3]

			value, err := domain.ParseValue(raw)
			if err != nil {
				return err
			}
			formula := temperature.Exact
			if legacy {
				formula = temperature.Legacy
			}

			var line string
			if single {
				line, err = convertLine(quantity, float32(value), from, to, formula)
			} else {
				line, err = convertLine(quantity, value, from, to, formula)
			}
			if err != nil {
				return err
			}

			c.Logger.Debug("converted", "quantity", quantity, "from", from, "to", to, "float32", single, "formula", formula)
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	cmd.Flags().BoolVar(&single, "float32", false, "convert in single precision")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "use the 0.55 Fahrenheit to Celsius factor")
	return cmd
}

// convertLine converts value and renders it as "<value> <from> are <result> <to>"
// using canonical unit labels.
func convertLine[T domain.Float](quantity string, value T, from, to string, f temperature.Formula) (string, error) {
	switch quantity {
	case temperature.Quantity:
		fu, err := temperature.ParseUnit(from)
		if err != nil {
			return "", err
		}
		tu, err := temperature.ParseUnit(to)
		if err != nil {
			return "", err
		}
		return sentence(value, fu, temperature.ConvertWith(value, fu, tu, f), tu)

	case length.Quantity:
		fu, err := length.ParseUnit(from)
		if err != nil {
			return "", err
		}
		tu, err := length.ParseUnit(to)
		if err != nil {
			return "", err
		}
		return sentence(value, fu, length.Convert(value, fu, tu), tu)
	}
	return "", fmt.Errorf("%w: %q", converter.ErrUnknownQuantity, quantity)
}

func sentence[T domain.Float](value T, from fmt.Stringer, result T, to fmt.Stringer) (string, error) {
	if r := float64(result); math.IsInf(r, 0) || math.IsNaN(r) {
		return "", fmt.Errorf("%w: %s %s in %s", domain.ErrOutOfRange, domain.FormatValue(value), from, to)
	}
	return fmt.Sprintf("%s %s are %s %s", domain.FormatValue(value), from, domain.FormatValue(result), to), nil
}
