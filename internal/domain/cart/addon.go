package cart

import "strings"

// addonKeywords are the known add-on product ids that carry neither the
// "addon-" prefix nor an "additional-" infix.
var addonKeywords = []string{
	"multi-language",
	"dark-mode",
	"cdn",
	"premium-ssl",
	"custom-email",
	"analytics",
	"priority-support",
}

// IsAddonID reports whether a product id names an add-on rather than a
// regular product. This is the single definition of the add-on partition;
// every surface that groups cart items (header badge, sidebar, checkout
// summary) must use it.
//
// TODO: replace the naming convention with an explicit kind field on the
// catalog entries once clients stop sending bare ids.
func IsAddonID(id string) bool {
	if strings.HasPrefix(id, "addon-") || strings.Contains(id, "additional-") {
		return true
	}
	for _, keyword := range addonKeywords {
		if strings.Contains(id, keyword) {
			return true
		}
	}
	return false
}
