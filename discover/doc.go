// Package discover implements best-effort search over a capability
// catalog. It is a thin collaborator of the sandbox core: a
// case-insensitive pattern match across names, descriptions, and
// rendered parameter schemas. Discovery never fails: a bad pattern or
// an unrenderable schema degrades to an empty result.
package discover
