// Package errors provides structured error types for better observability
// and programmatic error handling across labnet.
//
// Every failure surfaced by the topology store, the resolver and the
// renderer is a *StructuredError carrying one of the ErrCode* values.
// Callers branch on the code rather than on message text:
//
//	path, err := resolver.Resolve(topo, name)
//	if errors.HasCode(err, errors.ErrCodeNotFound) {
//	    // unknown identifier or dangling alias
//	}
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeMalformedDocument,
//	    "failed to parse topology",
//	    cause,
//	    map[string]any{
//	        "path": path,
//	    },
//	)
package errors
