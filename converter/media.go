// converter/media.go

package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"MediaConverter/common"
)

// stderrTailLines limits how much helper diagnostics end up in a status line
const stderrTailLines = 12

// MediaConverter converts audio or video files by running the ffmpeg helper as
// `helper -i <input> <output>`.
type MediaConverter struct {
	category  common.Category
	helper    string
	logger    *common.Logger
	helperLog *common.Logger
}

// NewMediaConverter creates a helper-backed converter for the audio or video category.
// helperLog receives the raw helper output, it may be nil.
func NewMediaConverter(category common.Category, helperPath string, logger, helperLog *common.Logger) (*MediaConverter, error) {
	if category != common.CategoryAudio && category != common.CategoryVideo {
		return nil, fmt.Errorf("category %s is not handled by the media helper", category)
	}
	return &MediaConverter{
		category:  category,
		helper:    helperPath,
		logger:    logger,
		helperLog: helperLog,
	}, nil
}

// Category implements Converter
func (c *MediaConverter) Category() common.Category {
	return c.category
}

// Helper returns the helper executable path
func (c *MediaConverter) Helper() string {
	return c.helper
}

// Convert runs the helper for one file. An existing output is never overwritten: the helper
// is started without -y and with no stdin, so it refuses and exits non-zero.
func (c *MediaConverter) Convert(ctx context.Context, inputPath, format string) (string, error) {
	token := common.NormalizeFormat(format)
	if err := checkRequest(ctx, c.category, inputPath, token); err != nil {
		return "", err
	}

	if !common.FileExists(c.helper) {
		return "", common.NewOperationError(common.KindHelperNotFound, common.OperationConvert, inputPath,
			fmt.Sprintf("%s not found at %s", common.HelperFFmpeg, c.helper), nil)
	}

	outputPath := common.OutputPathFor(inputPath, token)
	if err := checkOutput(inputPath, outputPath); err != nil {
		return "", err
	}
	existedBefore := common.FileExists(outputPath)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.helper, "-i", inputPath, outputPath)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	hideWindow(cmd)

	c.logger.Debug("Running %s -i %s %s", c.helper, inputPath, outputPath)
	runErr := cmd.Run()

	c.helperLog.Info("FFMPEG %s -> %s\n%s%s", inputPath, outputPath, stdout.String(), stderr.String())

	if ctx.Err() != nil {
		if !existedBefore {
			os.Remove(outputPath)
		}
		return "", common.NewOperationError(common.KindCancelled, common.OperationConvert, inputPath,
			"operation cancelled", ctx.Err())
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			if !existedBefore {
				os.Remove(outputPath)
			}
			return "", common.NewOperationError(common.KindConversionFailed, common.OperationConvert, inputPath,
				stderrTail(stderr.String(), exitErr), runErr)
		}
		if errors.Is(runErr, exec.ErrNotFound) || errors.Is(runErr, fs.ErrNotExist) || errors.Is(runErr, fs.ErrPermission) {
			return "", common.NewOperationError(common.KindHelperNotFound, common.OperationConvert, inputPath,
				fmt.Sprintf("%s could not be started: %v", c.helper, runErr), runErr)
		}
		return "", common.NewOperationError(common.KindIOError, common.OperationConvert, inputPath, "", runErr)
	}

	return outputPath, nil
}

// stderrTail keeps the last lines of the helper diagnostics
func stderrTail(stderr string, exitErr *exec.ExitError) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return fmt.Sprintf("helper exited with code %d", exitErr.ExitCode())
	}
	lines := strings.Split(strings.ReplaceAll(stderr, "\r\n", "\n"), "\n")
	if len(lines) > stderrTailLines {
		lines = lines[len(lines)-stderrTailLines:]
	}
	return strings.Join(lines, "\n")
}
