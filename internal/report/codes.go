package report

// Code is a stable, machine-readable identifier for a class of Issue.
type Code string

// Parse failures. Each one aborts validation of its document.
const (
	CodeMalformedXML              Code = "malformed-xml"
	CodeUnescapedQuoteInAttribute Code = "unescaped-quote-in-attribute"
	CodeUnescapedLtInAttribute    Code = "unescaped-lt-in-attribute"
	CodeUnescapedAmpersand        Code = "unescaped-ampersand"
	CodeMissingEnvelope           Code = "missing-envelope"
	CodeMissingDiagram            Code = "missing-diagram"
	CodeMissingGraphModel         Code = "missing-graph-model"
	CodeMissingRootElement        Code = "missing-root-element"
	CodeUndecodableDiagram        Code = "undecodable-diagram"
	CodeUnreadableInput           Code = "unreadable-input"
)

// Structural and graph integrity errors.
const (
	CodeDuplicateID           Code = "duplicate-id"
	CodeMissingCellID         Code = "missing-cell-id"
	CodeMissingRootCell       Code = "missing-root-cell"
	CodeMissingDefaultLayer   Code = "missing-default-layer"
	CodeDanglingParent        Code = "dangling-parent"
	CodeMissingTypeFlag       Code = "missing-type-flag"
	CodeCyclicParentChain     Code = "cyclic-parent-chain"
	CodeDanglingEdgeSource    Code = "dangling-edge-source"
	CodeDanglingEdgeTarget    Code = "dangling-edge-target"
	CodeMissingGeometryMarker Code = "missing-geometry-marker"
)

// Hygiene warnings.
const (
	CodeLiteralNewlineInValue     Code = "literal-newline-in-value"
	CodeMultilineValueAttribute   Code = "multiline-value-attribute"
	CodeUnsafeBrWithoutHTMLFlag   Code = "unsafe-br-without-html-flag"
	CodeFixedPageLayout           Code = "fixed-page-layout"
	CodeMissingXMLDeclaration     Code = "missing-xml-declaration"
	CodeUnescapedAmpersandInValue Code = "unescaped-ampersand-in-value"
	CodeMarkupWithoutHTMLFlag     Code = "markup-without-html-flag"
	CodeUnsupportedMarkupInValue  Code = "unsupported-markup-in-value"
	CodeAngleBracketInValue       Code = "angle-bracket-in-value"
)

// WarningCodes lists every hygiene code in report order. These are the only
// codes a configuration may disable.
var WarningCodes = []Code{
	CodeMissingXMLDeclaration,
	CodeFixedPageLayout,
	CodeLiteralNewlineInValue,
	CodeMultilineValueAttribute,
	CodeUnsafeBrWithoutHTMLFlag,
	CodeMarkupWithoutHTMLFlag,
	CodeUnsupportedMarkupInValue,
	CodeUnescapedAmpersandInValue,
	CodeAngleBracketInValue,
}

// IsWarningCode reports whether c is one of WarningCodes.
func IsWarningCode(c Code) bool {
	for _, w := range WarningCodes {
		if w == c {
			return true
		}
	}
	return false
}

// OptInCodes lists the hygiene codes that are off unless a configuration
// enables them. draw.io itself often saves documents without a declaration.
var OptInCodes = []Code{
	CodeMissingXMLDeclaration,
}

// IsOptInCode reports whether c is one of OptInCodes.
func IsOptInCode(c Code) bool {
	for _, o := range OptInCodes {
		if o == c {
			return true
		}
	}
	return false
}
