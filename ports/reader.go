package ports

import "lipidflow/domain/table"

// TableReader parses one raw tabular input into the in-memory table model.
// Implementations live in adapters/tabular.
type TableReader interface {
	Read() (*table.Table, error)
}
