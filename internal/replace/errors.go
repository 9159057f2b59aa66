package replace

import (
	"fmt"

	appErrors "dainty/internal/errors"
)

func categoryPath(category, key string) string {
	return fmt.Sprintf("replacements.overrides.categories[%q][%q]", category, key)
}

func searchPath(find string) string {
	return fmt.Sprintf("replacements.overrides.searchReplace[%q]", find)
}

func variantName(i int) string {
	if i == 1 {
		return "light"
	}
	return "dark"
}

func slotName(i int) string {
	if i == 1 {
		return "text"
	}
	return "background"
}

func categoryShapeError(category, key string) error {
	return appErrors.At(appErrors.CodeMalformedValue, categoryPath(category, key),
		fmt.Sprintf("category replacement %q in category %q must be a list of 2 entries: "+
			"a [background, text] pair for the dark variant and one for the light variant", key, category), nil)
}

func categoryTupleError(category, key string, variant int) error {
	return appErrors.At(appErrors.CodeMalformedValue, fmt.Sprintf("%s[%d]", categoryPath(category, key), variant),
		fmt.Sprintf("index %d of category replacement %q in category %q must be a list of 2 entries: "+
			"the background and text color for the %s variant", variant, key, category, variantName(variant)), nil)
}

func categorySlotError(category, key string, variant, slot int, err error) error {
	return appErrors.At(appErrors.CodeOf(err), fmt.Sprintf("%s[%d][%d]", categoryPath(category, key), variant, slot),
		fmt.Sprintf("%s %s color of category replacement %q in category %q: %v",
			variantName(variant), slotName(slot), key, category, err), err)
}

func findKeyError(find string) error {
	return appErrors.At(appErrors.CodeInvalidFindKey, searchPath(find),
		fmt.Sprintf("search-replace key %q is not a valid color hex value", find), nil)
}

func searchShapeError(find string) error {
	return appErrors.At(appErrors.CodeMalformedValue, searchPath(find),
		fmt.Sprintf("search-replace replacement %q must be a list of 2 entries: "+
			"the replacement for the dark variant and the one for the light variant", find), nil)
}

func searchSlotError(find string, variant int, err error) error {
	return appErrors.At(appErrors.CodeOf(err), fmt.Sprintf("%s[%d]", searchPath(find), variant),
		fmt.Sprintf("%s replacement of search-replace %q: %v", variantName(variant), find, err), err)
}

func baseResolveError(where string, err error) error {
	return appErrors.At(appErrors.CodeOf(err), where, fmt.Sprintf("built-in replacement: %v", err), err)
}
