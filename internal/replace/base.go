package replace

// Environment toggles alternative colors in the built-in search-replace table.
type Environment struct {
	AdditionalTextContrast         bool
	AdditionalBackgroundContrast   bool
	AdditionalScrollbarsContrast   bool
	AdditionalCommentsContrast     bool
	TransparentScrollbarContainers bool
	TransparentBorders             bool
	TransparentToolWindowGrips     bool
}

func both(v Value) SearchRule { return SearchRule{Dark: v, Light: v} }
func split(dark, light Value) SearchRule { return SearchRule{Dark: dark, Light: light} }

func blueGrays(i int) Value { return Step("blueGrays", i) }
func blues(i int) Value { return Step("blues", i) }
func accent(i int) Value { return Step("accent", i) }

func pick(cond bool, yes, no Value) Value {
	if cond {
		return yes
	}
	return no
}

// BaseCategories returns a fresh copy of the built-in category rules.
func BaseCategories() *CategoryRules {
	r := NewCategoryRules()
	text := func(dark, light Value) CategoryRule {
		return CategoryRule{Dark: Tuple{Null(), dark}, Light: Tuple{Null(), light}}
	}

	r.Set("ColorizedSignatureHelp colors", "HTML Attribute Value", text(Step("oranges", 33), Step("oranges", 18)))
	r.Set("ColorizedSignatureHelp colors", "punctuation", text(blueGrays(28), blueGrays(28)))
	r.Set("ColorizedSignatureHelp colors", "urlformat", text(accent(34), accent(16)))

	// Revert the yellow current statement marker to its stock color.
	revert := Tuple{Literal("#eff284"), Null()}
	r.Set("Text Editor Text Marker Items", "Current Statement", CategoryRule{Dark: revert, Light: revert})

	r.Set("StartPage", "StartPageHeadingText", text(Step("bluesLessChrome", 34), Step("bluesLessChrome", 34)))
	r.Set("StartPage", "StartPageTitleText", text(Step("bluesLessChrome", 34), Step("bluesLessChrome", 34)))
	return r
}

// BaseSearchReplace returns the built-in search-replace rules for env, in
// priority order.
func BaseSearchReplace(env Environment) *SearchRules {
	c := 0
	if env.AdditionalTextContrast {
		c = 2
	}
	cb := c

	environmentBackground := pick(env.AdditionalBackgroundContrast, blueGrays(3), blueGrays(2))
	activeTabAndStatusbar := pick(env.AdditionalBackgroundContrast, blueGrays(5+cb), blueGrays(4+cb))
	accentText := split(accent(34), accent(16))

	r := NewSearchRules()
	add := r.Set

	// Backgrounds
	add("#007acc", both(activeTabAndStatusbar)) // active tab, statusbar
	add("#3e3e40", both(blueGrays(6)))          // menu bar item hover
	add("#1b1b1c", both(blueGrays(2)))          // menu
	add("#333334", both(blueGrays(6)))          // menu item hover
	add("#1c97ea", both(blueGrays(4)))          // hover tab
	add("#52b0ef", both(blueGrays(8)))          // inactive tab hover close
	add("#0e6198", both(blueGrays(10)))         // inactive tab active close
	add("#1e1e1e", both(blueGrays(0)))          // editor
	add("#222222", both(blueGrays(0)))          // toolbar separator
	add("#252526", both(blueGrays(0)))          // solution explorer, properties
	add("#2d2d30", both(environmentBackground)) // title bar, menu bar
	add("#333333", both(blueGrays(1)))          // breakpoints bar
	add("#333337", both(blueGrays(0)))          // search boxes, menu borders
	add("#3e3e42", both(pick(env.TransparentScrollbarContainers, blueGrays(0), blueGrays(1))))
	add("#686868", both(pick(env.AdditionalScrollbarsContrast, blueGrays(6), blueGrays(4))))
	add("#9e9e9e", both(pick(env.AdditionalScrollbarsContrast, blueGrays(8), blueGrays(6))))
	add("#efebef", both(pick(env.AdditionalScrollbarsContrast, blueGrays(10), blueGrays(8))))
	add("#555558", both(blueGrays(4))) // scrollbar glyph disabled
	add("#3f3f46", both(pick(env.TransparentBorders, environmentBackground, blueGrays(4))))
	add("#434346", both(blueGrays(8))) // package manager border
	add("#464646", both(blueGrays(2))) // current line border
	add("#46464a", both(pick(env.TransparentToolWindowGrips, environmentBackground, blueGrays(8))))
	add("#59a8de", both(pick(env.TransparentToolWindowGrips, activeTabAndStatusbar, blueGrays(16))))
	add("#eff284", both(blueGrays(2)))        // file changes indicator
	add("#577430", both(blueGrays(2)))        // file changes after save
	add("#232323", both(blueGrays(2)))        // outline area
	add("#68217a", both(blues(0)))            // file preview
	add("#424245", both(blueGrays(2)))        // tooltip
	add("#4d4d50", both(blueGrays(2)))        // tooltip border
	add("#3f3f40", both(blueGrays(2)))        // extensions item hover
	add("#fefcc8", both(Step("oranges", 39))) // yellowy tooltip line
	add("#4f4f53", both(accent(24)))          // start page arrow
	add("#606060", both(accent(28)))          // start page arrow hover
	add("#8631c7", both(blues(8)))            // notification badge
	add("#1f1f20", both(blueGrays(16)))       // zoom box arrow hover
	add("#393939", both(blueGrays(4)))        // inactive tool window glyph hover
	add("#2d2d2d", both(blueGrays(4)))        // team explorer changes label
	add("#3d3d3d", both(blueGrays(8)))        // team explorer changes label icon
	add("#525252", both(blueGrays(12)))       // ... hover
	add("#c8c8c8", both(blues(36)))           // team explorer changes icon
	add("#0079ce", both(blues(20)))           // team explorer settings indicator
	add("#f05033", accentText)                // team explorer changes indicator
	add("#555555", both(blueGrays(4)))        // diagnostic tools tab hover

	// Foregrounds
	add("#dadada", both(blueGrays(32)))          // editor tooltip
	add("#ff8c00", accentText)                   // start page NEW
	add("#3399ff", both(accent(28)))             // preview selected items border
	add("#569cd6", split(blues(26), blues(24)))  // keywords
	add("#008080", split(blues(26), blues(24)))  // bold markup elements
	add("#00a0a0", split(blues(32), blues(20)))  // entities
	add("#4ec9b0", split(blues(32), blues(20)))  // type names
	add("#9cdcfe", split(blues(32), blues(20)))  // html attributes
	add("#0097fb", both(blueGrays(32+c)))        // active tool window tab
	add("#d7ba7d", both(blueGrays(32+c)))        // json properties
	add("#dcdcdc", both(blueGrays(32+c)))        // punctuation, method names
	add("#ffffff", split(accent(34), accent(8))) // status bar, logo, active tab
	add("#d0e6f5", both(blueGrays(32+c)))        // close and pin icons
	add("#808080", both(blueGrays(26)))          // angle brackets
	add("#b4b4b4", both(blueGrays(32)))          // operators
	add("#f1f1f1", both(blueGrays(32+c)))        // most UI text
	add("#d0d0d0", both(blueGrays(24+c)))        // inactive tool window tabs
	add("#999999", both(blueGrays(20+c)))        // window title
	add("#656565", both(blueGrays(16+c)))        // disabled menu item
	add("#55aaff", both(blueGrays(32+c)))        // inactive tool window tab hover
	add("#57a64a", both(pick(env.AdditionalCommentsContrast, blueGrays(20), blueGrays(16))))
	add("#608b4e", both(pick(env.AdditionalCommentsContrast, blueGrays(20), blueGrays(16))))
	add("#b5cea8", split(Step("greens", 36), Step("greens", 16)))   // numbers
	add("#b8d7a3", split(Step("purples", 30), Step("purples", 20))) // interfaces
	add("#c563bd", split(Step("purples", 30), Step("purples", 20))) // less variables
	add("#d69d85", split(Step("oranges", 33), Step("oranges", 18))) // strings
	add("#84ceff", both(blueGrays(36)))                             // start page heading
	add("#88ccfe", both(blueGrays(36)))                             // import theme hover
	return r
}
