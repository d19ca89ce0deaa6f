// shellmenu/legacy.go

package shellmenu

import (
	"context"

	"MediaConverter/common"
)

// CleanLegacy removes the image-only menu written by older releases from the image,
// folder and folder background targets. It needs no elevation check of its own, it
// only ever deletes.
func (r *Registrar) CleanLegacy(ctx context.Context) Report {
	targets := LegacyTargets()
	rep := Report{Targets: len(targets)}

	for _, target := range targets {
		if ctx.Err() != nil {
			break
		}
		main := target.MainKeyPath(LegacyMenuName)
		exists, err := r.store.KeyExists(main)
		if err != nil {
			rep.fail(target, err)
			r.report(common.SeverityError, "Error removing old '%s' menu for %s: %v", LegacyMenuName, target, err)
			continue
		}
		if !exists {
			rep.Succeeded++
			continue
		}

		if err := r.store.DeleteValue(main, valueSubCommands); err != nil && !IsNotFound(err) {
			rep.fail(target, classify(common.OperationLegacy, main, err))
			r.report(common.SeverityError, "Error removing old '%s' menu for %s: %v", LegacyMenuName, target, err)
			continue
		}
		if err := r.removeTree(main); err != nil {
			rep.fail(target, classify(common.OperationLegacy, main, err))
			r.report(common.SeverityError, "Error removing old '%s' menu for %s: %v", LegacyMenuName, target, err)
			continue
		}
		rep.Succeeded++
		r.report(common.SeverityInfo, "Removed old '%s' menu for %s.", LegacyMenuName, target)
	}
	return rep
}
