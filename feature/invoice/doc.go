// Package invoice exposes the reconciliation pipeline over HTTP and wires
// extraction providers, the merge engine, validation and persistence into
// one service.
package invoice
