package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Anastasialos/osmoh/internal/document"
)

var fmtTo string

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Rewrite a document in normalized form",
	Long: `Fmt reads a document and writes it back normalized: fields in schema
order, defaults made explicit where the model requires them, meaning
unchanged. Useful before committing hand-edited documents.

Output format follows the input (a .json file stays JSON, everything
else becomes YAML) unless --to overrides it.`,
	Example: `  osmoh fmt hours.yaml
  osmoh fmt hours.yaml -o hours.yaml
  cat hours.yaml | osmoh fmt --to json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := docArg(args)
		doc, err := document.LoadDocument(path)
		if err != nil {
			return err
		}
		rules, err := doc.ToRules()
		if err != nil {
			return err
		}

		norm := document.FromRules(rules)
		norm.Name = doc.Name

		format := document.DetectFormat(path)
		if path == "-" {
			format = document.FormatYAML
		}
		if fmtTo != "" {
			if format, err = document.ParseFormat(fmtTo); err != nil {
				return err
			}
		}

		data, err := document.EncodeDocument(norm, format)
		if err != nil {
			return err
		}

		w, closeFn, err := outputWriter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeFn()

		_, err = w.Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().StringVar(&fmtTo, "to", "", "output document format: yaml|json (default: same as input)")
}
