package cart

import (
	"fmt"
	"strings"
)

// Snapshot is the whole-value wire shape persisted to the slot.
type Snapshot struct {
	Lines          []Line `json:"lines"`
	TotalItemCount int    `json:"totalItemCount"`
}

// Validate performs the structural checks restore() relies on. Any failure
// means the persisted value is treated as absent.
func (s Snapshot) Validate() error {
	seen := make(map[string]struct{}, len(s.Lines))
	sum := 0
	for i, line := range s.Lines {
		if strings.TrimSpace(line.ProductID) == "" {
			return fmt.Errorf("line %d: missing product id", i)
		}
		if _, dup := seen[line.ProductID]; dup {
			return fmt.Errorf("line %d: duplicate product id %q", i, line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
		if line.Name == "" {
			return fmt.Errorf("line %d: missing name", i)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("line %d: quantity %d below 1", i, line.Quantity)
		}
		if line.UnitPrice.IsNegative() {
			return fmt.Errorf("line %d: negative unit price %s", i, line.UnitPrice)
		}
		sum += line.Quantity
	}
	if sum != s.TotalItemCount {
		return fmt.Errorf("total item count %d does not match line sum %d", s.TotalItemCount, sum)
	}
	return nil
}
