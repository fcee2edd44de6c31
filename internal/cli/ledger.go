package cli

import (
	"fmt"

	"github.com/mesh-intelligence/drum/pkg/sqlite"
	"github.com/mesh-intelligence/drum/pkg/types"
)

// openLedger attaches the ledger described by s. The caller must defer
// ledger.Detach().
func openLedger(s settings) (types.Ledger, error) {
	ledger := sqlite.NewLedger()
	if err := ledger.Attach(s.ledgerConfig()); err != nil {
		return nil, fmt.Errorf("attach ledger: %w", err)
	}
	return ledger, nil
}
