// Package paths defines the textual control path format and provides
// XDG-compliant application directories.
//
// A control path addresses exactly one controllable property inside a
// runtime instance as a dot-delimited triple:
//
//	{namespace}.{container}.{property}
//
// where namespace is one of stateMachines, viewModels or imageAssets.
// Dot characters inside container or property names are not escapable;
// paths containing embedded dots in a name are ambiguous and unsupported.
package paths
