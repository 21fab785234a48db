package tabular

import (
	"fmt"
	"strings"

	"github.com/optiprompt/optiprompt/internal/domain"
)

// PickFeatureColumns decides which columns form the model input.
//
// When requested is a non-empty comma-separated list, the named columns are
// returned in caller order (duplicates are the caller's responsibility).
// Otherwise the result is the header minus the label column, in header order.
func PickFeatureColumns(rows []Row, header []string, labelColumn, requested string) ([]string, error) {
	if len(rows) == 0 {
		return nil, domain.Validation("CSV is empty")
	}

	if !contains(header, labelColumn) {
		return nil, domain.Validation(fmt.Sprintf("label column '%s' not in CSV headers: %v", labelColumn, header))
	}

	if strings.TrimSpace(requested) != "" {
		var cols []string
		for _, c := range strings.Split(requested, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cols = append(cols, c)
			}
		}

		var missing []string
		for _, c := range cols {
			if !contains(header, c) {
				missing = append(missing, c)
			}
		}
		if len(missing) > 0 {
			return nil, domain.Validation(fmt.Sprintf("missing feature columns: %v", missing))
		}
		return cols, nil
	}

	features := make([]string, 0, len(header)-1)
	for _, h := range header {
		if h != labelColumn {
			features = append(features, h)
		}
	}
	return features, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
