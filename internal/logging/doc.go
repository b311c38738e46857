// Package logger provides leveled logging for Cryptora CLI commands.
//
// Output is prefixed with a colored level tag. Verbosity is controlled by
// the --verbose and --debug flags:
//
//	Logger.Infof()       // Shown with --verbose or --debug
//	Logger.Debugf()      // Shown only with --debug
//	Logger.Warnf()       // Shown with --verbose or --debug
//	Logger.WarnfAlways() // Always shown
//	Logger.Errorf()      // Shown with --debug
//
// Without flags only the final user-facing message of a command is
// printed; that message is rendered by the cmd package, not by the logger.
//
// A Logger is a plain value. Commands build one in PersistentPreRun and
// hand it to the workflows Session.
package logger
