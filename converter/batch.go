// converter/batch.go

package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"MediaConverter/common"
)

// Summary counts the outcome of one walk
type Summary struct {
	Total     int
	Converted int
	Failed    int
	Skipped   int
	Cancelled bool
	// Err is set when the walk could not start at all
	Err error
}

// ProgressFunc is called after each item with the number of processed items
type ProgressFunc func(done, total int, current string)

// Walker expands a file or folder into conversion items and converts them one after another.
type Walker struct {
	converters map[common.Category]Converter
	reporter   common.Reporter
	logger     *common.Logger
	progress   ProgressFunc
}

// NewWalker creates a walker dispatching to the given converters by category
func NewWalker(reporter common.Reporter, logger *common.Logger, converters ...Converter) *Walker {
	w := &Walker{
		converters: make(map[common.Category]Converter),
		reporter:   reporter,
		logger:     logger,
	}
	for _, c := range converters {
		w.converters[c.Category()] = c
	}
	return w
}

// SetProgress installs a progress callback
func (w *Walker) SetProgress(fn ProgressFunc) {
	w.progress = fn
}

// Converter returns the converter registered for the category
func (w *Walker) Converter(category common.Category) (Converter, bool) {
	c, ok := w.converters[category]
	return c, ok
}

// Run converts path, a single file or every matching file of a folder, to format.
// Every item produces exactly one status line. Item failures never stop the walk,
// cancellation is checked between items.
func (w *Walker) Run(ctx context.Context, category common.Category, path, format string, recursive bool) Summary {
	conv, ok := w.converters[category]
	if !ok {
		err := fmt.Errorf("no converter registered for %s", category)
		common.Reportf(w.reporter, common.SeverityCritical, "Error: %v", err)
		return Summary{Err: err}
	}

	if !common.IsSupportedFormat(category, format) {
		err := common.NewOperationError(common.KindUnsupportedOutput, common.OperationBatch, path,
			fmt.Sprintf("Unsupported %s format '%s'. Supported formats are: %s", category, format, common.SupportedList(category)), nil)
		common.Reportf(w.reporter, common.SeverityError, "Error: %s", err.Detail)
		return Summary{Err: err}
	}

	items, err := w.collect(category, path, recursive)
	if err != nil {
		common.Reportf(w.reporter, common.SeverityError, "Error: %s", Describe(err))
		return Summary{Err: err}
	}

	summary := Summary{Total: len(items)}
	if len(items) == 0 {
		common.Reportf(w.reporter, common.SeverityWarning, "No %s files found in '%s'.", category, path)
		return summary
	}
	w.logger.Info("Converting %d %s file(s) from %s to %s (recursive: %t)", len(items), category, path, format, recursive)

	for i, item := range items {
		if ctx.Err() != nil {
			summary.Cancelled = true
			remaining := len(items) - i
			summary.Skipped += remaining
			common.Reportf(w.reporter, common.SeverityWarning, "Cancelled, %d file(s) not converted.", remaining)
			break
		}

		// earlier outputs found by the scan are never converted onto themselves
		if common.SameFile(item, common.OutputPathFor(item, format)) {
			summary.Skipped++
			common.Reportf(w.reporter, common.SeverityInfo, "Skipped '%s', already %s.", item, strings.ToUpper(common.NormalizeFormat(format)))
			if w.progress != nil {
				w.progress(i+1, len(items), item)
			}
			continue
		}

		out, err := conv.Convert(ctx, item, format)
		if err != nil {
			summary.Failed++
			common.Reportf(w.reporter, common.SeverityError, "Error converting '%s': %s", item, Describe(err))
		} else {
			summary.Converted++
			common.Reportf(w.reporter, common.SeverityInfo, "Success! Converted '%s' to '%s'.", item, out)
		}

		if w.progress != nil {
			w.progress(i+1, len(items), item)
		}
	}

	if ctx.Err() != nil {
		summary.Cancelled = true
	}

	w.logger.Info("Finished %s conversion of %s: %d converted, %d failed, %d skipped",
		category, path, summary.Converted, summary.Failed, summary.Skipped)
	return summary
}

// collect returns the files to convert, sorted by path
func (w *Walker) collect(category common.Category, path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, common.NewOperationError(common.KindInvalidPath, common.OperationBatch, path,
			fmt.Sprintf("'%s' is not a valid file or directory.", path), err)
	}

	switch {
	case info.Mode().IsRegular():
		return []string{path}, nil
	case info.IsDir():
		files, err := common.ListFilesWithExtensions(path, common.RecognizedExtensions(category), recursive)
		if err != nil {
			return nil, common.NewOperationError(common.KindIOError, common.OperationBatch, path, "", err)
		}
		return files, nil
	}
	return nil, common.NewOperationError(common.KindInvalidPath, common.OperationBatch, path,
		fmt.Sprintf("'%s' is not a valid file or directory.", path), nil)
}

// Describe returns the user facing text of an error without the operation prefix
func Describe(err error) string {
	var opErr *common.OperationError
	if errors.As(err, &opErr) {
		if opErr.Detail != "" {
			return opErr.Detail
		}
		if opErr.Err != nil {
			return fmt.Sprintf("%s: %v", opErr.Kind, opErr.Err)
		}
		return opErr.Kind.String()
	}
	return err.Error()
}
