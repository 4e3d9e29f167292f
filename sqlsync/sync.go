package sqlsync

import (
	"context"
	"fmt"

	"github.com/verdantdata/doltgo/dolt"
)

// Mapping maps source table names to target table names.
type Mapping map[string]string

// IdentityMapping builds a mapping where each table syncs to a table of
// the same name.
func IdentityMapping(tables ...string) Mapping {
	m := make(Mapping, len(tables))
	for _, t := range tables {
		m[t] = t
	}
	return m
}

// sourceTables returns the mapping's source table names.
func (m Mapping) sourceTables() []string {
	tables := make([]string, 0, len(m))
	for t := range m {
		tables = append(tables, t)
	}
	return tables
}

// TableReader reads the named tables from a data source.
type TableReader func(ctx context.Context, tables []string) (map[string]*dolt.TableData, error)

// TableWriter writes table data to a data target, keyed by table name.
type TableWriter func(ctx context.Context, data map[string]*dolt.TableData) error

// Sync reads the mapping's source tables, renames them per the mapping,
// and writes them to the target.
func Sync(ctx context.Context, reader TableReader, writer TableWriter, mapping Mapping) error {
	if len(mapping) == 0 {
		return fmt.Errorf("sync: empty table mapping")
	}

	data, err := reader(ctx, mapping.sourceTables())
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	remapped := make(map[string]*dolt.TableData, len(data))
	for source, target := range mapping {
		td, ok := data[source]
		if !ok {
			return fmt.Errorf("sync: source table %q not read", source)
		}
		remapped[target] = td
	}

	if err := writer(ctx, remapped); err != nil {
		return fmt.Errorf("write target: %w", err)
	}
	return nil
}

// SyncToDolt syncs from a relational source into a Dolt repository.
// It is Sync with the argument roles named for readability at call
// sites.
func SyncToDolt(ctx context.Context, source TableReader, target TableWriter, mapping Mapping) error {
	return Sync(ctx, source, target, mapping)
}

// SyncFromDolt syncs from a Dolt repository into a relational target.
func SyncFromDolt(ctx context.Context, source TableReader, target TableWriter, mapping Mapping) error {
	return Sync(ctx, source, target, mapping)
}
