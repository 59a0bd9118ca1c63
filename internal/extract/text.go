package extract

import (
	"strings"

	"github.com/Eliezir/adt-press/internal/domain"
)

// aggregateText concatenates the native text layers of the unit's pages with a
// blank-line separator, in ascending page order. Reading order is preserved
// across spread boundaries; nothing is reordered or deduplicated.
func aggregateText(doc domain.Document, group PageGroup) (string, error) {
	texts := make([]string, 0, 2)
	for _, idx := range pageIndices(group) {
		text, err := doc.PageText(idx)
		if err != nil {
			return "", err
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n\n"), nil
}
