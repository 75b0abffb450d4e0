package catalog

import "fmt"

// Source selects where a catalog is loaded from. SQLitePath wins when both
// are set; Table defaults to DefaultTable.
type Source struct {
	CSVPath    string
	SQLitePath string
	Table      string
}

// Load loads and validates a catalog from the configured source.
func Load(src Source) (*Catalog, error) {
	if src.SQLitePath != "" {
		table := src.Table
		if table == "" {
			table = DefaultTable
		}
		return LoadSQLite(src.SQLitePath, table)
	}
	if src.CSVPath != "" {
		return LoadCSV(src.CSVPath)
	}
	return nil, fmt.Errorf("no catalog source configured (provide a CSV file or a SQLite database)")
}
