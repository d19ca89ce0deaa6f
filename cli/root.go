// Package cli implements the command line surface used by the Explorer context menu
// and by scripts.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"MediaConverter/common"
	"MediaConverter/converter"
	"MediaConverter/shellmenu"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Exit codes
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsageFlag = 2
)

// Deps holds what the commands operate on
type Deps struct {
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *common.Logger
	Walker    *converter.Walker
	Registrar *shellmenu.Registrar
}

type options struct {
	register   bool
	unregister bool

	image     bool
	recursive bool

	audio          bool
	audioInput     string
	audioOutput    string
	audioRecursive bool

	video          bool
	videoInput     string
	videoOutput    string
	videoRecursive bool
}

// legacyFlags maps the multi-letter single-dash flags used by registered menu commands
// to their long names
var legacyFlags = map[string]string{
	"-ai": "--audio-input",
	"-ar": "--audio-recursive",
	"-vi": "--video-input",
	"-vo": "--video-output",
	"-vr": "--video-recursive",
	"-ir": "--recursive",
}

// NormalizeArgs rewrites legacy single-dash flags, with or without an attached =value
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		name, value, hasValue := strings.Cut(arg, "=")
		if long, ok := legacyFlags[name]; ok {
			if hasValue {
				out = append(out, long+"="+value)
			} else {
				out = append(out, long)
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}

func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "image-recursive":
		name = "recursive"
	}
	return pflag.NormalizedName(name)
}

// usageError marks parse failures of the flag set
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitError carries a non-zero exit code out of a command
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newRootCommand(ctx context.Context, deps Deps) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use: "mediaconverter [--register | --unregister]\n" +
			"  mediaconverter --image <input> <format> [-r]\n" +
			"  mediaconverter --audio -ai <input> -o <format> [-ar]\n" +
			"  mediaconverter --video -vi <input> -vo <format> [-vr]",
		Short: "Convert images, audio and video files",
		Long: `MediaConverter converts a single file or every matching file of a folder.
Started without arguments it opens the windowed converter.

Image formats: ` + common.SupportedList(common.CategoryImage) + `
Audio formats: ` + common.SupportedList(common.CategoryAudio) + ` (requires ffmpeg)
Video formats: ` + common.SupportedList(common.CategoryVideo) + ` (requires ffmpeg)`,
		Version:       common.AppVersion,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(ctx, cmd, deps, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.SetNormalizeFunc(normalizeFlagName)

	flags.BoolVar(&opts.register, "register", false, "Add the context menu entries (requires administrator privileges)")
	flags.BoolVar(&opts.unregister, "unregister", false, "Remove the context menu entries (requires administrator privileges)")

	flags.BoolVar(&opts.image, "image", false, "Perform image conversion of <input> to <format>")
	flags.BoolVarP(&opts.recursive, "recursive", "r", false, "Recursively search for images in subdirectories (alias -ir, --image-recursive)")

	flags.BoolVar(&opts.audio, "audio", false, "Perform audio conversion")
	flags.StringVar(&opts.audioInput, "audio-input", "", "Input audio file or folder (alias -ai)")
	flags.StringVarP(&opts.audioOutput, "audio-output", "o", "", "Audio output format")
	flags.BoolVar(&opts.audioRecursive, "audio-recursive", false, "Recursively search for audio files (alias -ar)")

	flags.BoolVar(&opts.video, "video", false, "Perform video conversion")
	flags.StringVar(&opts.videoInput, "video-input", "", "Input video file or folder (alias -vi)")
	flags.StringVar(&opts.videoOutput, "video-output", "", "Video output format (alias -vo)")
	flags.BoolVar(&opts.videoRecursive, "video-recursive", false, "Recursively search for video files (alias -vr)")

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n\n", err.Error())
		cmd.Usage()
		return usageError{err: err}
	})

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, deps Deps, opts *options, args []string) error {
	switch {
	case opts.register:
		return runRegistrar(ctx, deps, true)
	case opts.unregister:
		return runRegistrar(ctx, deps, false)
	case opts.image:
		if len(args) < 2 {
			return cmd.Usage()
		}
		return runConversion(ctx, cmd, deps, common.CategoryImage, args[0], args[1], opts.recursive)
	case opts.audio:
		if opts.audioInput == "" || opts.audioOutput == "" {
			return cmd.Usage()
		}
		return runConversion(ctx, cmd, deps, common.CategoryAudio, opts.audioInput, opts.audioOutput, opts.audioRecursive)
	case opts.video:
		if opts.videoInput == "" || opts.videoOutput == "" {
			return cmd.Usage()
		}
		return runConversion(ctx, cmd, deps, common.CategoryVideo, opts.videoInput, opts.videoOutput, opts.videoRecursive)
	}
	return cmd.Usage()
}

func runConversion(ctx context.Context, cmd *cobra.Command, deps Deps, category common.Category, input, rawFormat string, recursive bool) error {
	format := common.NormalizeFormat(rawFormat)
	if !common.IsSupportedFormat(category, format) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: Unsupported %s format '%s'. Supported formats are: %s\n",
			category, format, common.SupportedList(category))
		deps.Logger.Warning("Rejected %s format '%s'", category, format)
		return exitError{code: ExitFailure}
	}
	if deps.Walker == nil {
		return fmt.Errorf("no converter configured")
	}

	input = common.NormalizePath(input)
	deps.Logger.Info("CLI %s conversion: %s -> %s (recursive: %t)", category, input, format, recursive)

	// conversion failures are reported per item, they do not change the exit code
	deps.Walker.Run(ctx, category, input, format, recursive)
	return nil
}

func runRegistrar(ctx context.Context, deps Deps, register bool) error {
	if deps.Registrar == nil {
		return fmt.Errorf("no context menu registrar configured")
	}

	var err error
	if register {
		_, err = deps.Registrar.Register(ctx)
	} else {
		_, err = deps.Registrar.Unregister(ctx)
	}
	if err != nil {
		if common.IsKind(err, common.KindPermissionDenied) {
			return exitError{code: ExitFailure}
		}
		return err
	}
	return nil
}

// Run parses args and executes the requested operation. It returns the process exit code.
func Run(ctx context.Context, args []string, deps Deps) int {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	cmd := newRootCommand(ctx, deps)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)
	cmd.SetArgs(NormalizeArgs(args))

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var exitErr exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var flagErr usageError
	if errors.As(err, &flagErr) {
		return ExitUsageFlag
	}

	fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
	deps.Logger.Error("CLI failed: %v", err)
	return ExitFailure
}
