// Package check implements the catalog validation command.
package check

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/halchemy/bookpath/internal/catalog"
)

// Params selects the catalog source to validate.
type Params struct {
	CSVPath    string
	SQLitePath string
	Table      string

	Out io.Writer
}

// Run loads and validates the catalog, printing every issue found.
// A load failure and a validation failure are reported differently; only
// a clean catalog returns nil.
func Run(params Params) error {
	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	src := catalog.Source{
		CSVPath:    params.CSVPath,
		SQLitePath: params.SQLitePath,
		Table:      params.Table,
	}
	if src.CSVPath == "" && src.SQLitePath == "" {
		src.CSVPath = viper.GetString("catalog.csvfile")
		src.SQLitePath = viper.GetString("catalog.dbfile")
	}

	cat, err := catalog.Load(src)
	if err != nil {
		var validationErr *catalog.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Fprintf(out, "Catalog has %d problem(s):\n", len(validationErr.Issues))
			for _, issue := range validationErr.Issues {
				fmt.Fprintf(out, "  - %s\n", issue)
			}
			return fmt.Errorf("catalog validation failed")
		}
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	fmt.Fprintf(out, "Catalog OK: %d books across %d categories\n", cat.Len(), len(cat.Categories()))
	return nil
}
