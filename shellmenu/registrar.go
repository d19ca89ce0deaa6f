// shellmenu/registrar.go

package shellmenu

import (
	"context"
	"errors"
	"fmt"

	"MediaConverter/common"
)

// TargetFailure records why one target could not be processed
type TargetFailure struct {
	Target MenuTarget
	Err    error
}

// Report summarizes one registrar run
type Report struct {
	Targets   int
	Succeeded int
	Failures  []TargetFailure
}

// OK reports whether every target succeeded
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

func (r *Report) fail(target MenuTarget, err error) {
	r.Failures = append(r.Failures, TargetFailure{Target: target, Err: err})
}

// Registrar adds and removes the context menus in a KeyStore.
// The sequence is not transactional: a crash leaves partial state, re-running either
// operation repairs it.
type Registrar struct {
	store      KeyStore
	exe        string
	icon       string
	reporter   common.Reporter
	logger     *common.Logger
	isElevated func() bool
	targets    []MenuTarget
}

// NewRegistrar creates a registrar writing commands that start exe
func NewRegistrar(store KeyStore, exe string, reporter common.Reporter, logger *common.Logger) *Registrar {
	return &Registrar{
		store:      store,
		exe:        exe,
		reporter:   reporter,
		logger:     logger,
		isElevated: IsElevated,
		targets:    Targets(),
	}
}

// SetIcon sets the Icon value of the main menus, empty removes it
func (r *Registrar) SetIcon(icon string) {
	r.icon = icon
}

// SetElevationCheck replaces the privilege check
func (r *Registrar) SetElevationCheck(fn func() bool) {
	r.isElevated = fn
}

// Targets returns the targets the registrar manages
func (r *Registrar) Targets() []MenuTarget {
	return append([]MenuTarget(nil), r.targets...)
}

func (r *Registrar) report(level common.Severity, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.logger.Log(level, "%s", msg)
	if r.reporter != nil {
		r.reporter.Report(level, msg)
	}
}

func (r *Registrar) checkElevation(op string) error {
	if r.isElevated != nil && r.isElevated() {
		return nil
	}
	r.report(common.SeverityCritical, "This program needs to be run with administrator privileges to modify the registry.")
	r.report(common.SeverityCritical, "Please right-click the program or your terminal and select 'Run as administrator'.")
	return common.NewOperationError(common.KindPermissionDenied, op, "", "administrator privileges required", nil)
}

func cancelledError(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return common.NewOperationError(common.KindCancelled, op, "", "operation cancelled", err)
	}
	return nil
}

func classify(op, path string, err error) error {
	kind := common.KindIOError
	switch {
	case errors.Is(err, ErrAccessDenied):
		kind = common.KindPermissionDenied
	case errors.Is(err, ErrKeyNotFound):
		kind = common.KindNotFound
	}
	return common.NewOperationError(kind, op, path, "", err)
}

// Register writes the menus of every target. Existing entries are overwritten in place.
// A failing target is reported and the remaining targets are still processed.
func (r *Registrar) Register(ctx context.Context) (Report, error) {
	if err := r.checkElevation(common.OperationRegister); err != nil {
		return Report{}, err
	}

	rep := Report{Targets: len(r.targets)}
	for _, target := range r.targets {
		if err := cancelledError(ctx, common.OperationRegister); err != nil {
			return rep, err
		}
		if err := r.registerTarget(target); err != nil {
			rep.fail(target, err)
			r.report(common.SeverityError, "Error adding context menu for %s: %v", target, err)
			continue
		}
		rep.Succeeded++
	}

	if rep.OK() {
		r.report(common.SeverityInfo, "Context menu entries added successfully. You might need to restart Explorer or your computer for changes to take effect.")
	} else {
		r.report(common.SeverityWarning, "Context menu registration finished with %d failed target(s).", len(rep.Failures))
	}
	return rep, nil
}

func (r *Registrar) registerTarget(target MenuTarget) error {
	main := target.MainKeyPath(MenuName)

	if err := r.store.CreateKey(main); err != nil {
		return classify(common.OperationRegister, main, err)
	}
	// marker before children
	if err := r.store.SetString(main, valueSubCommands, ""); err != nil {
		return classify(common.OperationRegister, main, err)
	}
	if r.icon != "" {
		if err := r.store.SetString(main, valueIcon, r.icon); err != nil {
			return classify(common.OperationRegister, main, err)
		}
	} else if err := r.store.DeleteValue(main, valueIcon); err != nil && !IsNotFound(err) {
		return classify(common.OperationRegister, main, err)
	}
	r.report(common.SeverityInfo, "Added main context menu with subcommands for %s: %s", target, MenuName)

	for _, entry := range target.Entries(r.exe) {
		entryKey := target.EntryKeyPath(MenuName, entry.Name)
		commandKey := JoinKey(entryKey, "command")

		if err := r.store.CreateKey(entryKey); err != nil {
			return classify(common.OperationRegister, entryKey, err)
		}
		if err := r.store.CreateKey(commandKey); err != nil {
			return classify(common.OperationRegister, commandKey, err)
		}
		if err := r.store.SetString(commandKey, "", entry.Command); err != nil {
			return classify(common.OperationRegister, commandKey, err)
		}
		r.logger.Debug("Added subcommand %s: %s", entry.Name, entry.Command)
	}
	return nil
}

// Unregister removes the menus of every target, then the legacy menus.
// Keys and values that are already gone count as removed.
func (r *Registrar) Unregister(ctx context.Context) (Report, error) {
	if err := r.checkElevation(common.OperationUnregister); err != nil {
		return Report{}, err
	}

	rep := Report{Targets: len(r.targets)}
	for _, target := range r.targets {
		if err := cancelledError(ctx, common.OperationUnregister); err != nil {
			return rep, err
		}
		removed, err := r.unregisterTarget(target)
		if err != nil {
			rep.fail(target, err)
			r.report(common.SeverityError, "Error removing main '%s' menu for %s: %v", MenuName, target, err)
			continue
		}
		rep.Succeeded++
		if removed {
			r.report(common.SeverityInfo, "Removed main '%s' menu for %s.", MenuName, target)
		} else {
			r.logger.Debug("No '%s' menu for %s, skipping removal", MenuName, target)
		}
	}

	legacy := r.CleanLegacy(ctx)
	rep.Failures = append(rep.Failures, legacy.Failures...)

	if rep.OK() {
		r.report(common.SeverityInfo, "Context menu entries removed successfully. You might need to restart Explorer or your computer for changes to take effect.")
	} else {
		r.report(common.SeverityWarning, "Context menu removal finished with %d failed target(s).", len(rep.Failures))
	}
	return rep, nil
}

// unregisterTarget reports whether the main key existed
func (r *Registrar) unregisterTarget(target MenuTarget) (bool, error) {
	main := target.MainKeyPath(MenuName)
	exists, err := r.store.KeyExists(main)
	if err != nil {
		return false, classify(common.OperationUnregister, main, err)
	}
	if !exists {
		return false, nil
	}

	for _, entry := range target.Entries(r.exe) {
		entryKey := target.EntryKeyPath(MenuName, entry.Name)
		if err := r.store.DeleteKey(JoinKey(entryKey, "command")); err != nil && !IsNotFound(err) {
			return true, classify(common.OperationUnregister, entryKey, err)
		}
		// leftovers below the entry are handled by removeTree
		if err := r.store.DeleteKey(entryKey); err != nil && !IsNotFound(err) && !errors.Is(err, ErrKeyHasChildren) {
			return true, classify(common.OperationUnregister, entryKey, err)
		}
	}

	if err := r.store.DeleteValue(main, valueSubCommands); err != nil && !IsNotFound(err) {
		return true, classify(common.OperationUnregister, main, err)
	}
	if err := r.removeTree(main); err != nil {
		return true, classify(common.OperationUnregister, main, err)
	}
	return true, nil
}

// removeTree deletes a key with everything below it. A missing key is not an error.
func (r *Registrar) removeTree(path string) error {
	children, err := r.store.SubKeys(path)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return err
	}
	for _, child := range children {
		if err := r.removeTree(JoinKey(path, child)); err != nil {
			return err
		}
	}
	if err := r.store.DeleteKey(path); err != nil && !IsNotFound(err) {
		return err
	}
	return nil
}

// Status reports whether the menu is registered, judged by the image files target
func (r *Registrar) Status() (bool, error) {
	for _, target := range r.targets {
		if target.Kind == TargetFileCategory && target.Category == common.CategoryImage {
			return r.store.KeyExists(target.MainKeyPath(MenuName))
		}
	}
	return false, nil
}
