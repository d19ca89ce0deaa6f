// Package converter turns one media file into another format. Images are handled in
// process, audio and video are delegated to the ffmpeg helper.
package converter

import (
	"context"
	"errors"
	"fmt"

	"MediaConverter/common"
)

// Converter converts a single input file and returns the path of the written output.
// Every failure is a *common.OperationError.
type Converter interface {
	Category() common.Category
	Convert(ctx context.Context, inputPath, format string) (string, error)
}

// NewFromSettings creates the converter of category from the given settings.
// ffmpeg is the helper used for audio and video.
func NewFromSettings(category common.Category, settings common.Settings, ffmpeg string, logger, helperLog *common.Logger) (Converter, error) {
	if category == common.CategoryImage {
		return NewImageConverter(ImageOptionsFromSettings(settings), logger), nil
	}
	return NewMediaConverter(category, ffmpeg, logger, helperLog)
}

// checkRequest validates the parts every converter shares: the output token and the input file.
func checkRequest(ctx context.Context, category common.Category, inputPath, format string) error {
	if !common.IsSupportedFormat(category, format) {
		return common.NewOperationError(common.KindUnsupportedOutput, common.OperationConvert, inputPath,
			fmt.Sprintf("Unsupported %s format '%s'. Supported formats are: %s", category, format, common.SupportedList(category)), nil)
	}
	if err := cancelled(ctx, inputPath); err != nil {
		return err
	}
	if !common.FileExists(inputPath) {
		return common.NewOperationError(common.KindNotFound, common.OperationConvert, inputPath,
			fmt.Sprintf("The input file '%s' was not found.", inputPath), nil)
	}
	return nil
}

// checkOutput refuses an output that would replace the input itself
func checkOutput(inputPath, outputPath string) error {
	if common.SameFile(inputPath, outputPath) {
		return common.NewOperationError(common.KindInvalidPath, common.OperationConvert, inputPath,
			fmt.Sprintf("'%s' is already in the requested format.", inputPath), nil)
	}
	return nil
}

func cancelled(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return common.NewOperationError(common.KindCancelled, common.OperationConvert, path, "operation cancelled", err)
	}
	return nil
}

// errCodecPanic marks a recovered panic inside a third-party codec
var errCodecPanic = errors.New("codec panic")

// recoverPanic turns a panic inside a codec into a Corrupt error
func recoverPanic(path string, err *error) {
	if r := recover(); r != nil {
		*err = common.NewOperationError(common.KindCorrupt, common.OperationConvert, path,
			fmt.Sprintf("%v: %v", errCodecPanic, r), errCodecPanic)
	}
}
