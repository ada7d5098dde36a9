package errors

// template defines a registered error code.
type template struct {
	Kind    Kind
	Message string
}

// registry maps error codes to their templates.
var registry = map[string]template{
	// ============================================
	// Render errors (E100-E199)
	// ============================================

	"E100": {
		Kind:    KindRender,
		Message: "Container not found",
	},
	"E101": {
		Kind:    KindRender,
		Message: "Node mutation failed",
	},
	"E102": {
		Kind:    KindRender,
		Message: "Unknown node kind",
	},
	"E103": {
		Kind:    KindRender,
		Message: "Portal container missing",
	},

	// ============================================
	// Hook errors (E200-E299)
	// ============================================

	"E201": {
		Kind:    KindHookContext,
		Message: "Hook called outside component render",
	},
	"E202": {
		Kind:    KindHookContext,
		Message: "Hook order changed between renders",
	},
	"E203": {
		Kind:    KindHookContext,
		Message: "Memo factory panicked",
	},

	// ============================================
	// Component errors (E300-E399)
	// ============================================

	"E300": {
		Kind:    KindComponent,
		Message: "Component render failed",
	},
	"E301": {
		Kind:    KindComponent,
		Message: "Component construction failed",
	},
	"E302": {
		Kind:    KindComponent,
		Message: "Unhandled error reached tree root",
	},

	// ============================================
	// Event errors (E400-E499)
	// ============================================

	"E400": {
		Kind:    KindEventDispatch,
		Message: "Event handler panicked",
	},
	"E401": {
		Kind:    KindEventDispatch,
		Message: "Event target not in document",
	},

	// ============================================
	// Validation errors (E500-E599)
	// ============================================

	"E500": {
		Kind:    KindValidation,
		Message: "Unsafe style value rejected",
	},
	"E501": {
		Kind:    KindValidation,
		Message: "Invalid prop value",
	},

	// ============================================
	// Protocol errors (E600-E699)
	// ============================================

	"E600": {
		Kind:    KindProtocol,
		Message: "Malformed frame",
	},
	"E601": {
		Kind:    KindProtocol,
		Message: "Frame exceeds size limit",
	},

	// ============================================
	// Config errors (E700-E799)
	// ============================================

	"E700": {
		Kind:    KindConfig,
		Message: "Invalid configuration",
	},
}
