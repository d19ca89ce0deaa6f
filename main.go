// main.go

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"MediaConverter/assets"
	"MediaConverter/cli"
	"MediaConverter/common"
	"MediaConverter/converter"
	"MediaConverter/locales"
	"MediaConverter/modules"
	"MediaConverter/shellmenu"
	"MediaConverter/theme"
	"MediaConverter/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// environment holds everything resolved once at startup, shared by the CLI and the GUI.
type environment struct {
	configMgr       *common.ConfigManager
	configInitError error
	logger          *common.Logger
	helperLogger    *common.Logger
	paths           common.Paths
	menuStore       shellmenu.KeyStore
}

// newEnvironment loads the configuration, opens both log files, selects the language
// and resolves the helper locations
func newEnvironment() *environment {
	env := &environment{menuStore: shellmenu.NewSystemStore()}

	env.configMgr, env.configInitError = common.OpenConfigManager()
	settings := env.configMgr.Settings()

	logger, err := common.OpenAppLogger(common.FileNameLog, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize log file, logging to console: %v\n", err)
		logger = common.NewWriterLogger(os.Stderr, settings.DebugLog)
	}
	env.logger = logger
	common.FlushEarlyLogs(logger)
	logger.Info("%s %s starting", common.AppName, common.AppVersion)

	if env.configInitError != nil {
		logger.Error("Configuration problem, defaults in use: %v", env.configInitError)
	} else {
		logger.Info("Using configuration file %s", env.configMgr.Path())
	}

	if env.helperLogger, err = common.OpenAppLogger(common.FileNameFFmpegLog, settings); err != nil {
		logger.Warning("Failed to open the ffmpeg log, helper output will not be kept: %v", err)
	}

	common.DetectAndSetLanguage(env.configMgr, logger)

	env.paths, err = common.ResolvePaths(common.HelperOverrides{
		FFmpeg:  settings.FFmpegPath,
		FFprobe: settings.FFprobePath,
	})
	if err != nil {
		logger.Error("Failed to resolve application paths: %v", err)
	}
	logger.Info("Bundle root: %s, ffmpeg: %s, ffprobe: %s", env.paths.BundleRoot, env.paths.FFmpeg, env.paths.FFprobe)
	for _, problem := range env.paths.VerifyHelpers() {
		logger.Warning("%v", problem)
	}

	return env
}

func (env *environment) close() {
	env.helperLogger.Close()
	env.logger.Close()
}

// converter creates the converter of category from the current settings. A changed
// ffmpeg location is re-resolved, the startup paths stay in use when that fails.
func (env *environment) converter(category common.Category) (converter.Converter, error) {
	settings := env.configMgr.Settings()
	ffmpeg := env.paths.FFmpeg
	if category != common.CategoryImage {
		paths, err := common.ResolvePaths(common.HelperOverrides{FFmpeg: settings.FFmpegPath, FFprobe: settings.FFprobePath})
		if err != nil {
			env.logger.Warning("Failed to resolve the helper paths, using %s: %v", ffmpeg, err)
		} else {
			ffmpeg = paths.FFmpeg
		}
	}
	return converter.NewFromSettings(category, settings, ffmpeg, env.logger, env.helperLogger)
}

// converters creates the image, audio and video converters
func (env *environment) converters() []converter.Converter {
	var convs []converter.Converter
	for _, category := range common.Categories {
		conv, err := env.converter(category)
		if err != nil {
			env.logger.Error("Failed to create %s converter: %v", category, err)
			continue
		}
		convs = append(convs, conv)
	}
	return convs
}

// newRegistrar creates a registrar over the key store shared by the whole process, so
// the simulated store of non Windows systems keeps its state between registrars.
// The menu icon setting is read on every call so a changed setting applies to the
// next registration.
func (env *environment) newRegistrar(reporter common.Reporter) *shellmenu.Registrar {
	registrar := shellmenu.NewRegistrar(env.menuStore, env.paths.Executable, reporter, env.logger)
	if env.configMgr.Settings().MenuIcon {
		registrar.SetIcon(shellmenu.IconValue(env.paths.Executable))
	}
	return registrar
}

// runCLI executes the command line operation and returns the exit code
func runCLI(env *environment, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	defer func() {
		if r := recover(); r != nil {
			common.NewErrorHandler(env.logger).HandlePanic("CLI", common.OperationStartup, r)
			fmt.Fprintf(os.Stderr, "Error: unexpected failure: %v\n", r)
			os.Exit(cli.ExitFailure)
		}
	}()

	console := &common.ConsoleReporter{Out: os.Stdout, ErrOut: os.Stderr}
	return cli.Run(ctx, args, cli.Deps{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Logger:    env.logger,
		Walker:    converter.NewWalker(common.LoggingReporter(env.logger, console), env.logger, env.converters()...),
		Registrar: env.newRegistrar(console),
	})
}

// MediaConverterApp is the main application structure.
type MediaConverterApp struct {
	env          *environment
	app          fyne.App
	mainWindow   fyne.Window
	errorHandler *common.ErrorHandler
	modules      []*moduleInfo
	tabContainer *container.AppTabs
	ctx          context.Context
	cancel       context.CancelFunc
}

// moduleInfo holds information about a lazily created tab.
type moduleInfo struct {
	module   ui.Module
	tabItem  *container.TabItem
	isLoaded bool
	name     string
	createFn func() ui.Module
}

// NewMediaConverterApp creates the Fyne application and its main window
func NewMediaConverterApp(env *environment) *MediaConverterApp {
	fyneApp := app.NewWithID(common.AppID)
	fyneApp.SetIcon(assets.ResourceAppLogo)
	fyneApp.Settings().SetTheme(theme.NewCustomTheme())

	ctx, cancel := context.WithCancel(context.Background())
	mc := &MediaConverterApp{
		env:    env,
		app:    fyneApp,
		ctx:    ctx,
		cancel: cancel,
	}

	mc.mainWindow = fyneApp.NewWindow(locales.Translate("main.app.title"))
	mc.mainWindow.SetIcon(theme.AppIcon())
	mc.mainWindow.Resize(fyne.NewSize(1000, 700))

	mc.errorHandler = common.NewErrorHandler(env.logger)
	ui.InstallErrorNotifier(mc.errorHandler, mc.mainWindow, env.logger.Path())

	// closing the window stops running conversions, the helper processes are killed with them
	mc.mainWindow.SetCloseIntercept(func() {
		env.logger.Info("Main window closed, cancelling running operations")
		mc.cancel()
		mc.mainWindow.Close()
	})

	return mc
}

// Run builds the tabs and runs the event loop until the window is closed
func (mc *MediaConverterApp) Run() {
	defer func() {
		if r := recover(); r != nil {
			mc.errorHandler.HandlePanic("Main", common.OperationStartup, r)
		}
	}()
	defer mc.cancel()

	mc.initModules()
	mc.createMainContent()
	mc.mainWindow.Show()

	if mc.env.configInitError != nil {
		ctx := common.NewErrorContext("Main", common.OperationStartup)
		ctx.Severity = common.SeverityWarning
		mc.errorHandler.ShowStandardError(fmt.Errorf("%s: %w", locales.Translate("common.err.config"), mc.env.configInitError), &ctx)
	}

	mc.app.Run()
	mc.env.logger.Info("%s exiting", common.AppName)
}

func (mc *MediaConverterApp) initModules() {
	prober := converter.NewProber(mc.env.paths.FFprobe, mc.env.logger)
	settingsMgr := mc.env.configMgr

	for _, category := range common.Categories {
		var tabProber *converter.Prober
		if category != common.CategoryImage {
			tabProber = prober
		}
		mc.modules = append(mc.modules, &moduleInfo{
			name: locales.Translate(string(category) + ".tab.name"),
			createFn: func() ui.Module {
				return modules.NewMediaConverterModule(mc.ctx, mc.mainWindow, settingsMgr, mc.errorHandler, category, mc.env.converter, tabProber)
			},
		})
	}

	mc.modules = append(mc.modules, &moduleInfo{
		name: locales.Translate("menu.tab.name"),
		createFn: func() ui.Module {
			return modules.NewContextMenuModule(mc.ctx, mc.mainWindow, settingsMgr, mc.errorHandler, mc.env.newRegistrar)
		},
	})
}

func (mc *MediaConverterApp) loadModule(info *moduleInfo) {
	if info.isLoaded {
		return
	}
	info.module = info.createFn()
	info.isLoaded = true
	info.tabItem.Content = info.module.GetContent()
	info.tabItem.Icon = info.module.GetIcon()
}

// createMainContent creates the tabs, only the selected tab is built up front
func (mc *MediaConverterApp) createMainContent() {
	mc.tabContainer = container.NewAppTabs()

	for _, info := range mc.modules {
		info.tabItem = container.NewTabItem(info.name, container.NewVBox())
		mc.tabContainer.Append(info.tabItem)
	}

	if len(mc.modules) > 0 {
		mc.loadModule(mc.modules[0])
		mc.tabContainer.Select(mc.modules[0].tabItem)
	}

	mc.tabContainer.OnSelected = func(tab *container.TabItem) {
		for _, info := range mc.modules {
			if info.tabItem == tab && !info.isLoaded {
				mc.loadModule(info)
				mc.tabContainer.Refresh()
				break
			}
		}
	}
	mc.tabContainer.SetTabLocation(container.TabLocationTop)

	content := container.NewBorder(mc.createMenuBar(), nil, nil, nil, mc.tabContainer)
	mc.mainWindow.SetContent(content)
}

// createMenuBar creates a horizontal bar with Settings, Help, About and Log buttons.
func (mc *MediaConverterApp) createMenuBar() fyne.CanvasObject {
	settingsButton := widget.NewButton(locales.Translate("settings.win.title"), func() {
		ui.ShowSettingsWindow(mc.mainWindow, mc.env.configMgr, mc.errorHandler)
	})
	helpButton := widget.NewButton(locales.Translate("main.menu.help"), func() {
		ui.ShowHelpWindow(mc.mainWindow)
	})
	aboutButton := widget.NewButton(locales.Translate("main.menu.about"), func() {
		ui.ShowAboutWindow(mc.mainWindow, mc.env.paths, mc.env.configMgr.Path(), mc.env.logger.Path())
	})
	logButton := widget.NewButton(locales.Translate("main.menu.log"), func() {
		ui.ShowLogViewerWindow(mc.env.logger.Path())
	})

	return container.NewHBox(settingsButton, helpButton, aboutButton, logButton)
}

// main starts the windowed converter without arguments and the command line otherwise.
func main() {
	env := newEnvironment()

	if len(os.Args) > 1 {
		code := runCLI(env, os.Args[1:])
		env.close()
		os.Exit(code)
	}

	NewMediaConverterApp(env).Run()
	env.close()
}
